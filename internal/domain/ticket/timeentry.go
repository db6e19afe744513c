package ticket

import (
	"math"
	"strings"
	"time"
)

type TimeEntry struct {
	id          string
	ticketID    string
	userID      string
	hours       float64
	description string
	date        time.Time
}

func NewTimeEntry(id, ticketID, userID string, hours float64, description string, date time.Time) (*TimeEntry, error) {
	if !ValidHours(hours) {
		return nil, ErrInvalidHours
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEntryDescriptionMissing
	}
	if ticketID == "" || userID == "" {
		return nil, ErrTicketMismatch
	}
	return &TimeEntry{
		id:          id,
		ticketID:    ticketID,
		userID:      userID,
		hours:       hours,
		description: description,
		date:        date.UTC(),
	}, nil
}

// ValidHours reports whether hours is a positive finite amount.
func ValidHours(hours float64) bool {
	return hours > 0 && !math.IsInf(hours, 0) && !math.IsNaN(hours)
}

func ReconstructTimeEntry(id, ticketID, userID string, hours float64, description string, date time.Time) *TimeEntry {
	return &TimeEntry{
		id:          id,
		ticketID:    ticketID,
		userID:      userID,
		hours:       hours,
		description: description,
		date:        date,
	}
}

func (e *TimeEntry) ID() string { return e.id }
func (e *TimeEntry) TicketID() string { return e.ticketID }
func (e *TimeEntry) UserID() string { return e.userID }
func (e *TimeEntry) Hours() float64 { return e.hours }
func (e *TimeEntry) Description() string { return e.description }
func (e *TimeEntry) Date() time.Time { return e.date }
