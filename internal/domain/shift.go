package domain

import "time"

// ShiftStatus enumerates attendance states of a shift.
type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusOnDuty    ShiftStatus = "on_duty"
	ShiftStatusLate      ShiftStatus = "late"
	ShiftStatusAbsent    ShiftStatus = "absent"
	ShiftStatusCompleted ShiftStatus = "completed"
)

// shiftTransitions lists the next states reachable from each status.
var shiftTransitions = map[ShiftStatus][]ShiftStatus{
	ShiftStatusScheduled: {ShiftStatusOnDuty, ShiftStatusLate, ShiftStatusAbsent},
	ShiftStatusOnDuty:    {ShiftStatusCompleted},
	ShiftStatusLate:      {ShiftStatusCompleted},
	ShiftStatusAbsent:    {ShiftStatusCompleted},
	ShiftStatusCompleted: nil,
}

// Valid reports whether s is a known status.
func (s ShiftStatus) Valid() bool {
	_, ok := shiftTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next follows
// scheduled -> {on_duty, late, absent} -> completed. Staying put is allowed.
func (s ShiftStatus) CanTransitionTo(next ShiftStatus) bool {
	if s == next {
		return next.Valid()
	}
	for _, candidate := range shiftTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ShiftType enumerates the kinds of shifts.
type ShiftType string

const (
	ShiftTypeMorning   ShiftType = "morning"
	ShiftTypeAfternoon ShiftType = "afternoon"
	ShiftTypeNight     ShiftType = "night"
	ShiftTypeOvertime  ShiftType = "overtime"
)

// Valid reports whether t is a known shift type.
func (t ShiftType) Valid() bool {
	switch t {
	case ShiftTypeMorning, ShiftTypeAfternoon, ShiftTypeNight, ShiftTypeOvertime:
		return true
	}
	return false
}

// Shift is a single assignment of an employee on a calendar date.
type Shift struct {
	ID         string
	EmployeeID string
	Date       time.Time
	StartTime  string
	EndTime    string
	Type       ShiftType
	Location   *string
	Notes      *string
	Status     ShiftStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Employee is filled at read time from the identity store.
	Employee *EmployeeSnapshot
}
