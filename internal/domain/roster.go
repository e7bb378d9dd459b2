package domain

import "time"

// RosterDraft is an unsaved roster proposal produced by the generator.
type RosterDraft struct {
	ID          string
	ManagerID   string
	StartDate   time.Time
	EndDate     time.Time
	Constraints map[string]any
	Shifts      []Shift
	Status      string
	CreatedAt   time.Time
}
