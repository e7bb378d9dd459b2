package dto

import (
	"time"

	"github.com/spec-kit/shift-roster/internal/domain"
)

// SwapRequestBody payload for POST /requests/swap.
type SwapRequestBody struct {
	TargetEmployeeID string  `json:"target_employee_id"`
	MyShiftDate      string  `json:"my_shift_date"`
	TargetShiftDate  string  `json:"target_shift_date"`
	Reason           *string `json:"reason"`
}

// LeaveRequestBody payload for POST /requests/leave.
type LeaveRequestBody struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	LeaveType string  `json:"leave_type"`
	Reason    *string `json:"reason"`
}

// ResolveRequestBody optional payload for approve/deny.
type ResolveRequestBody struct {
	ManagerNotes *string `json:"manager_notes"`
}

// RequestResponse flattens the request header and its payload.
type RequestResponse struct {
	ID               string               `json:"id"`
	EmployeeID       string               `json:"employee_id"`
	RequestType      domain.RequestType   `json:"request_type"`
	Status           domain.RequestStatus `json:"status"`
	Reason           *string              `json:"reason"`
	ManagerID        *string              `json:"manager_id"`
	ManagerNotes     *string              `json:"manager_notes"`
	TargetEmployeeID *string              `json:"target_employee_id,omitempty"`
	MyShiftDate      *string              `json:"my_shift_date,omitempty"`
	TargetShiftDate  *string              `json:"target_shift_date,omitempty"`
	StartDate        *string              `json:"start_date,omitempty"`
	EndDate          *string              `json:"end_date,omitempty"`
	LeaveType        *string              `json:"leave_type,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	Employee         *EmployeeResponse    `json:"employee"`
}
