package dto

import (
	"time"

	"github.com/spec-kit/shift-roster/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// LoginRequest payload for login. Credentials may also arrive as query parameters.
type LoginRequest struct {
	Email    string `json:"email" query:"email"`
	Password string `json:"password" query:"password"`
}

// ProfileUpdateRequest carries optional profile fields.
type ProfileUpdateRequest struct {
	Name  *string      `json:"name"`
	Email *string      `json:"email"`
	Role  *domain.Role `json:"role"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// EmployeeResponse is the employee snapshot embedded in shifts and requests.
type EmployeeResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}
