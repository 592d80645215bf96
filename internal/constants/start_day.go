// Package constants provides shared constants for the trello-weekly application
package constants

import "fmt"

// StartDay represents the day a numbered week begins on
type StartDay string

const (
	// StartDayMonday numbers weeks by the ISO-8601 calendar
	StartDayMonday StartDay = "monday"
	// StartDaySaturday starts each numbered week two days before its ISO Monday
	StartDaySaturday StartDay = "saturday"
	// StartDaySunday starts each numbered week one day before its ISO Monday
	StartDaySunday StartDay = "sunday"
)

// IsValid checks if the start day value is valid
func (d StartDay) IsValid() bool {
	return d == StartDayMonday || d == StartDaySaturday || d == StartDaySunday
}

// String returns the string representation of the start day
func (d StartDay) String() string {
	return string(d)
}

// Weekday returns the start day as a Weekday value
func (d StartDay) Weekday() Weekday {
	return Weekday(d)
}

// ShiftDays returns how many days a date must be moved forward so that the
// ISO week number of the shifted date equals the week number of the original
// date in a week starting on d.
func (d StartDay) ShiftDays() int {
	switch d {
	case StartDaySaturday:
		return 2
	case StartDaySunday:
		return 1
	default:
		return 0
	}
}

// ParseStartDay parses a string into a StartDay type
// Returns an error if the value is invalid
func ParseStartDay(s string) (StartDay, error) {
	day := StartDay(s)
	if !day.IsValid() {
		return "", fmt.Errorf("invalid start day: %s (must be 'monday', 'saturday' or 'sunday')", s)
	}
	return day, nil
}

// GetAllStartDays returns all valid start day values
func GetAllStartDays() []StartDay {
	return []StartDay{StartDayMonday, StartDaySaturday, StartDaySunday}
}
