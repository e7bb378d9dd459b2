package domain

import "time"

// RequestType selects the payload carried by a request.
type RequestType string

const (
	RequestTypeSwap  RequestType = "swap"
	RequestTypeLeave RequestType = "leave"
)

// Valid reports whether t is a known request type.
func (t RequestType) Valid() bool {
	return t == RequestTypeSwap || t == RequestTypeLeave
}

// RequestStatus enumerates request lifecycle states.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDenied   RequestStatus = "denied"
)

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusDenied:
		return true
	}
	return false
}

// IsDecision reports whether s is a resolution outcome.
func (s RequestStatus) IsDecision() bool {
	return s == RequestStatusApproved || s == RequestStatusDenied
}

// SwapDetails is the payload of a swap request.
type SwapDetails struct {
	TargetEmployeeID string
	MyShiftDate      time.Time
	TargetShiftDate  time.Time
}

// LeaveDetails is the payload of a leave request.
type LeaveDetails struct {
	StartDate time.Time
	EndDate   time.Time
	LeaveType string
}

// Request is a swap or leave request. Exactly one of Swap and Leave is set,
// matching Type.
type Request struct {
	ID           string
	EmployeeID   string
	Type         RequestType
	Status       RequestStatus
	Reason       *string
	ManagerID    *string
	ManagerNotes *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Swap  *SwapDetails
	Leave *LeaveDetails

	Employee *EmployeeSnapshot
}
