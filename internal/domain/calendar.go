package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04:05"
)

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t, nil
}

// CalendarDate returns midnight UTC of the calendar day t falls on in its own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS and returns the HH:MM:SS form.
func ParseTimeOfDay(value string) (string, error) {
	for _, layout := range []string{TimeOfDayLayout, "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(TimeOfDayLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time of day %q", value)
}
