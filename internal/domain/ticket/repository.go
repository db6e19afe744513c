package ticket

import (
	"context"

	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
)

type Repository interface {
	// NextID reserves the next TKT-NNN id.
	NextID(ctx context.Context) (string, error)
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	// List returns matching tickets, newest first.
	List(ctx context.Context, filter Filter) ([]*Ticket, error)
	// DeleteByOrganization removes every ticket of the organization and
	// returns how many were removed.
	DeleteByOrganization(ctx context.Context, organizationID string) (int, error)
}

// Filter narrows a ticket listing. Nil and empty fields match everything.
type Filter struct {
	OrganizationID *string
	Status         *vo.TicketStatus
	Priority       *vo.Priority
	Category       *vo.Category
	AssignedTo     *string
	// Search matches id, title or description, case-insensitively.
	Search string
}
