package activity

import (
	"context"
	"fmt"
	"time"
)

type Type string

const (
	TypeTicketCreated       Type = "ticket-created"
	TypeTicketUpdated       Type = "ticket-updated"
	TypeMessageAdded        Type = "message-added"
	TypeTicketResolved      Type = "ticket-resolved"
	TypeConversionRequested Type = "conversion-requested"
	TypeConversionApproved  Type = "conversion-approved"
)

var validTypes = map[Type]bool{
	TypeTicketCreated:       true,
	TypeTicketUpdated:       true,
	TypeMessageAdded:        true,
	TypeTicketResolved:      true,
	TypeConversionRequested: true,
	TypeConversionApproved:  true,
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	return validTypes[t]
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid activity type: %s", s)
	}
	return t, nil
}

// Activity is an immutable audit entry.
type Activity struct {
	id           string
	activityType Type
	description  string
	userID       string
	ticketID     string
	createdAt    time.Time
}

func NewActivity(id string, activityType Type, description, userID, ticketID string, createdAt time.Time) (*Activity, error) {
	if !activityType.IsValid() {
		return nil, fmt.Errorf("invalid activity type: %s", activityType)
	}
	if userID == "" {
		return nil, fmt.Errorf("activity actor is required")
	}
	return &Activity{
		id:           id,
		activityType: activityType,
		description:  description,
		userID:       userID,
		ticketID:     ticketID,
		createdAt:    createdAt.UTC(),
	}, nil
}

func (a *Activity) ID() string {
	return a.id
}

func (a *Activity) Type() Type {
	return a.activityType
}

func (a *Activity) Description() string {
	return a.description
}

func (a *Activity) UserID() string {
	return a.userID
}

// TicketID is empty for activities not tied to a ticket.
func (a *Activity) TicketID() string {
	return a.ticketID
}

func (a *Activity) HasTicket() bool {
	return a.ticketID != ""
}

func (a *Activity) CreatedAt() time.Time {
	return a.createdAt
}

// Repository is append-only.
type Repository interface {
	Append(ctx context.Context, a *Activity) error
	// List returns activities most recent first, in reverse append order.
	List(ctx context.Context) ([]*Activity, error)
}
