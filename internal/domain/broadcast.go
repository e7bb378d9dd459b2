package domain

import "time"

// Broadcast is a message sent by a manager to every employee.
type Broadcast struct {
	ID        string
	ManagerID string
	Message   string
	CreatedAt time.Time
}
