// Package schedule computes which weekly list a run targets and the due
// dates of the cards inside it.
package schedule

import (
	"fmt"
	"time"

	"github.com/pmorille/trello-weekly/internal/constants"
)

// MinWeekNumber and MaxWeekNumber bound explicitly requested week numbers
const (
	MinWeekNumber = 1
	MaxWeekNumber = 53
)

// ListNameFormat is the pattern for weekly list titles (zero-padded week number)
const ListNameFormat = "Todo w%02d"

// Context is the resolved identity of a single weekly run
type Context struct {
	Week      int
	ListTitle string
	Position  constants.Position
	StartDay  constants.StartDay
	WeekStart time.Time
	DryRun    bool
}

// DueDate returns the timestamp for a card falling on day at hour:minute
// within the resolved week
func (c *Context) DueDate(day constants.Weekday, hour, minute int) time.Time {
	offset := day.OffsetFrom(c.StartDay.Weekday())
	d := c.WeekStart.AddDate(0, 0, offset)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

// Options configures a Resolver
type Options struct {
	// Week is the explicitly requested week number, nil selects the current week
	Week     *int
	StartDay constants.StartDay
	Position constants.Position
	DryRun   bool
}

// Resolver computes the weekly list identity from a reference time
type Resolver struct {
	week     *int
	startDay constants.StartDay
	position constants.Position
	dryRun   bool
}

// New creates a new Resolver instance
func New(opts Options) *Resolver {
	return &Resolver{
		week:     opts.Week,
		startDay: opts.StartDay,
		position: opts.Position,
		dryRun:   opts.DryRun,
	}
}

// Resolve computes the run context for the given reference time
func (r *Resolver) Resolve(now time.Time) (*Context, error) {
	week, err := r.weekNumber(now)
	if err != nil {
		return nil, err
	}

	return &Context{
		Week:      week,
		ListTitle: ListTitle(week),
		Position:  r.position,
		StartDay:  r.startDay,
		WeekStart: r.weekStart(week, now),
		DryRun:    r.dryRun,
	}, nil
}

// weekNumber returns the explicitly requested week when one was given,
// otherwise the number of the week containing now
func (r *Resolver) weekNumber(now time.Time) (int, error) {
	if r.week != nil {
		week := *r.week
		if week < MinWeekNumber || week > MaxWeekNumber {
			return 0, fmt.Errorf("invalid week number: %d (must be between %d and %d)", week, MinWeekNumber, MaxWeekNumber)
		}
		return week, nil
	}

	_, week := r.shifted(now).ISOWeek()
	return week, nil
}

// weekStart returns the first day of the numbered week at 00:00.
// ISO week 1 is the week containing January 4th; weeks starting on saturday
// or sunday begin the corresponding number of days before their ISO Monday.
func (r *Resolver) weekStart(week int, now time.Time) time.Time {
	isoYear, _ := r.shifted(now).ISOWeek()

	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, now.Location())
	// Monday-based weekday index of January 4th (Monday = 0)
	jan4Weekday := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -jan4Weekday)

	targetMonday := week1Monday.AddDate(0, 0, (week-1)*7)
	return targetMonday.AddDate(0, 0, -r.startDay.ShiftDays())
}

// shifted moves the reference time forward so ISO week arithmetic also
// covers weeks that begin before Monday
func (r *Resolver) shifted(now time.Time) time.Time {
	return now.AddDate(0, 0, r.startDay.ShiftDays())
}

// ListTitle formats the weekly list title for a week number
func ListTitle(week int) string {
	return fmt.Sprintf(ListNameFormat, week)
}
