// Package season provides calendar classification for planning runs:
// blackout days, named season windows, date-range iteration, and the
// week numbering used for anchor deduplication.
package season

import (
	"fmt"
	"strings"
	"time"
)

// mmdd is the layout of season window boundaries. Windows compare only
// the month-day portion of a date and may not cross year-end.
const mmdd = "01-02"

// Window is a named season span with the weekdays an athlete's squad is
// typically at its home venue.
type Window struct {
	Start        string // "MM-DD", inclusive
	End          string // "MM-DD", inclusive
	HomeWeekdays []time.Weekday
}

// Contains reports whether d's month-day falls inside the window.
func (w Window) Contains(d time.Time) bool {
	md := d.Format(mmdd)
	return md >= w.Start && md <= w.End
}

// IsHomeDay reports whether d falls on one of the window's typical
// home-presence weekdays.
func (w Window) IsHomeDay(d time.Time) bool {
	for _, wd := range w.HomeWeekdays {
		if d.Weekday() == wd {
			return true
		}
	}
	return false
}

// Validate checks that the window boundaries parse as MM-DD and do not
// wrap around year-end.
func (w Window) Validate() error {
	for _, b := range []string{w.Start, w.End} {
		if _, err := time.Parse(mmdd, b); err != nil {
			return fmt.Errorf("%w: bad boundary %q", ErrInvalidWindow, b)
		}
	}
	if w.Start > w.End {
		return fmt.Errorf("%w: start %q after end %q", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Option applies a configuration option to the Calendar.
type Option func(*Calendar)

// WithBlackoutWeekday sets the weekly no-travel day.
func WithBlackoutWeekday(d time.Weekday) Option {
	return func(c *Calendar) {
		c.blackout = d
	}
}

// Calendar classifies dates for the planning engine. The zero-value
// blackout day is Sunday, matching the scouts' weekly off day.
type Calendar struct {
	blackout time.Weekday
}

// NewCalendar creates a Calendar with default configuration.
func NewCalendar(opts ...Option) *Calendar {
	c := &Calendar{blackout: time.Sunday}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsBlackout reports whether d falls on the designated blackout weekday.
func (c *Calendar) IsBlackout(d time.Time) bool {
	return d.Weekday() == c.blackout
}

// Day truncates t to its calendar date in UTC. All planning math works
// on midnight-UTC dates so equality checks are exact.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DatesInRange returns every calendar date from start through end
// inclusive. Generation is stateless; callers may re-iterate freely.
func DatesInRange(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil
	}
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// WeekNumber indexes d's week relative to Jan 1 of its year (week 0
// starts on Jan 1). This is not the official ISO week; it only needs to
// be stable within a planning range for venue deduplication.
func WeekNumber(d time.Time) int {
	return (d.YearDay() - 1) / 7
}

// ParseWeekday converts a configuration string such as "sunday" or
// "Thu" into a time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}
