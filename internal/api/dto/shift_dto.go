package dto

import (
	"time"

	"github.com/spec-kit/shift-roster/internal/domain"
)

// CreateShiftRequest payload.
type CreateShiftRequest struct {
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	StartTime  string           `json:"start_time"`
	EndTime    string           `json:"end_time"`
	ShiftType  domain.ShiftType `json:"shift_type"`
	Location   *string          `json:"location"`
	Notes      *string          `json:"notes"`
}

// UpdateShiftStatusRequest payload. Status may also arrive as a query parameter.
type UpdateShiftStatusRequest struct {
	Status domain.ShiftStatus `json:"status" query:"status"`
}

// ShiftResponse represents a shift with its employee snapshot.
type ShiftResponse struct {
	ID         string             `json:"id"`
	EmployeeID string             `json:"employee_id"`
	Date       string             `json:"date"`
	StartTime  string             `json:"start_time"`
	EndTime    string             `json:"end_time"`
	ShiftType  domain.ShiftType   `json:"shift_type"`
	Location   *string            `json:"location"`
	Notes      *string            `json:"notes"`
	Status     domain.ShiftStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Employee   *EmployeeResponse  `json:"employee"`
}

// GenerateRosterRequest payload for POST /shifts/ai-generate.
type GenerateRosterRequest struct {
	StartDate        string         `json:"start_date" query:"start_date"`
	EndDate          string         `json:"end_date" query:"end_date"`
	MinStaffRequired int            `json:"min_staff_required" query:"min_staff_required"`
	Constraints      map[string]any `json:"constraints" query:"-"`
}

// RosterResponse is an unsaved roster draft.
type RosterResponse struct {
	ID          string          `json:"id"`
	ManagerID   string          `json:"manager_id"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Constraints map[string]any  `json:"constraints"`
	Shifts      []ShiftResponse `json:"shifts"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}
