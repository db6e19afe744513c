// Package biztime provides business timezone helpers.
// Timestamps are stored in UTC. The business timezone only decides calendar
// boundaries: which day a date-only input refers to and which month is
// "current" when an invoice period is left empty.
package biztime

import (
	"fmt"
	"time"
)

const (
	// DefaultTimezone is used when billing.timezone is empty.
	DefaultTimezone = "UTC"

	// DateLayout is the date-only format accepted for time entries.
	DateLayout = "2006-01-02"
)

// Clock returns the current instant. Stores take one so tests can pin time.
type Clock func() time.Time

// Calendar resolves calendar boundaries in one business timezone. The zero
// value uses UTC.
type Calendar struct {
	loc *time.Location
}

// NewCalendar loads the named timezone; an empty name means UTC.
func NewCalendar(tz string) (Calendar, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Calendar{}, fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	return Calendar{loc: loc}, nil
}

// UTCCalendar is the calendar used when no timezone is configured.
func UTCCalendar() Calendar {
	return Calendar{loc: time.UTC}
}

// Location returns the business timezone.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// SystemClock is the Clock used outside tests.
func SystemClock() Clock {
	return NowUTC
}

// FixedClock always returns t in UTC.
func FixedClock(t time.Time) Clock {
	t = t.UTC()
	return func() time.Time { return t }
}

// StartOfDayUTC returns business-day midnight for t, converted to UTC.
func (c Calendar) StartOfDayUTC(t time.Time) time.Time {
	loc := c.Location()
	biz := t.In(loc)
	return time.Date(biz.Year(), biz.Month(), biz.Day(), 0, 0, 0, 0, loc).UTC()
}

// CurrentMonth returns the business-timezone month and year that contain t.
func (c Calendar) CurrentMonth(t time.Time) (month int, year int) {
	biz := t.In(c.Location())
	return int(biz.Month()), biz.Year()
}

// ParseDate parses a YYYY-MM-DD string as business timezone midnight and
// returns the UTC equivalent.
func (c Calendar) ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, c.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// FormatDate renders a UTC instant as a business-timezone date.
func (c Calendar) FormatDate(t time.Time) string {
	return t.In(c.Location()).Format(DateLayout)
}
