package domain

import "time"

// Role enumerates the two access levels of the roster.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

// User is the domain model for managers and employees.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}

// EmployeeSnapshot is the public view of a user embedded into shifts and requests.
type EmployeeSnapshot struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// Snapshot returns the public fields of the user.
func (u *User) Snapshot() *EmployeeSnapshot {
	if u == nil {
		return nil
	}
	return &EmployeeSnapshot{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
