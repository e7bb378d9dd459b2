package events

import (
	"time"

	"github.com/spec-kit/shift-roster/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShiftCreated       EventType = "shift_created"
	EventShiftStatusChanged EventType = "shift_status_changed"
	EventRequestCreated     EventType = "request_created"
	EventRequestResolved    EventType = "request_resolved"
	EventBroadcastSent      EventType = "broadcast_sent"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID string      `json:"resource_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ShiftCreatedPayload payload.
type ShiftCreatedPayload struct {
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	ShiftType  domain.ShiftType `json:"shift_type"`
}

// ShiftStatusChangedPayload payload.
type ShiftStatusChangedPayload struct {
	EmployeeID string             `json:"employee_id"`
	OldStatus  domain.ShiftStatus `json:"old_status"`
	NewStatus  domain.ShiftStatus `json:"new_status"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	EmployeeID  string             `json:"employee_id"`
	RequestType domain.RequestType `json:"request_type"`
}

// RequestResolvedPayload payload.
type RequestResolvedPayload struct {
	EmployeeID string               `json:"employee_id"`
	OldStatus  domain.RequestStatus `json:"old_status"`
	NewStatus  domain.RequestStatus `json:"new_status"`
	ManagerID  string               `json:"manager_id"`
}

// BroadcastSentPayload payload.
type BroadcastSentPayload struct {
	Message string `json:"message"`
}
