package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen           TicketStatus = "open"
	StatusInProgress     TicketStatus = "in-progress"
	StatusAwaitingClient TicketStatus = "awaiting-client"
	StatusResolved       TicketStatus = "resolved"
	StatusClosed         TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:           true,
	StatusInProgress:     true,
	StatusAwaitingClient: true,
	StatusResolved:       true,
	StatusClosed:         true,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

// IsActive reports statuses still counted as open work.
func (ts TicketStatus) IsActive() bool {
	return ts == StatusOpen || ts == StatusInProgress || ts == StatusAwaitingClient
}

// IsDone reports resolved or closed; only these are billed.
func (ts TicketStatus) IsDone() bool {
	return ts == StatusResolved || ts == StatusClosed
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
