// Package constants provides shared constants for the trello-weekly application
package constants

import (
	"fmt"
	"strings"
	"time"
)

// Weekday represents a day of the week as it appears in card configuration
type Weekday string

const (
	// WeekdayMonday is the first day of a Monday-based week
	WeekdayMonday Weekday = "monday"
	// WeekdayTuesday is the second day of a Monday-based week
	WeekdayTuesday Weekday = "tuesday"
	// WeekdayWednesday is the third day of a Monday-based week
	WeekdayWednesday Weekday = "wednesday"
	// WeekdayThursday is the fourth day of a Monday-based week
	WeekdayThursday Weekday = "thursday"
	// WeekdayFriday is the fifth day of a Monday-based week
	WeekdayFriday Weekday = "friday"
	// WeekdaySaturday is the sixth day of a Monday-based week
	WeekdaySaturday Weekday = "saturday"
	// WeekdaySunday is the last day of a Monday-based week
	WeekdaySunday Weekday = "sunday"
)

// weekdayIndex maps each weekday to its Monday-based index (Monday = 0)
var weekdayIndex = map[Weekday]int{
	WeekdayMonday:    0,
	WeekdayTuesday:   1,
	WeekdayWednesday: 2,
	WeekdayThursday:  3,
	WeekdayFriday:    4,
	WeekdaySaturday:  5,
	WeekdaySunday:    6,
}

// weekdayTime maps each weekday to the standard library weekday
var weekdayTime = map[Weekday]time.Weekday{
	WeekdayMonday:    time.Monday,
	WeekdayTuesday:   time.Tuesday,
	WeekdayWednesday: time.Wednesday,
	WeekdayThursday:  time.Thursday,
	WeekdayFriday:    time.Friday,
	WeekdaySaturday:  time.Saturday,
	WeekdaySunday:    time.Sunday,
}

// IsValid checks if the weekday value is valid
func (w Weekday) IsValid() bool {
	_, ok := weekdayIndex[w]
	return ok
}

// String returns the string representation of the weekday
func (w Weekday) String() string {
	return string(w)
}

// Time returns the standard library equivalent of the weekday
func (w Weekday) Time() time.Weekday {
	return weekdayTime[w]
}

// OffsetFrom returns the number of days from start to w within a week that
// begins on start. The result is always in the range [0, 6].
func (w Weekday) OffsetFrom(start Weekday) int {
	return (weekdayIndex[w] - weekdayIndex[start] + 7) % 7
}

// UnmarshalText lowercases and stores the value so configuration files can
// use any casing. Range checking happens during configuration validation.
func (w *Weekday) UnmarshalText(text []byte) error {
	*w = Weekday(strings.ToLower(strings.TrimSpace(string(text))))
	return nil
}

// ParseWeekday parses a string into a Weekday type, accepting any casing
// Returns an error if the value is not a day of the week
func ParseWeekday(s string) (Weekday, error) {
	day := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if !day.IsValid() {
		return "", fmt.Errorf("invalid day of week: %s", s)
	}
	return day, nil
}

// GetAllWeekdays returns all valid weekday values in Monday-based order
func GetAllWeekdays() []Weekday {
	return []Weekday{
		WeekdayMonday,
		WeekdayTuesday,
		WeekdayWednesday,
		WeekdayThursday,
		WeekdayFriday,
		WeekdaySaturday,
		WeekdaySunday,
	}
}
