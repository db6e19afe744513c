package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/id"
)

var _ ticket.Repository = (*TicketRepository)(nil)

type TicketRepository struct {
	tables *Tables
}

func NewTicketRepository(tables *Tables) *TicketRepository {
	return &TicketRepository{tables: tables}
}

func (r *TicketRepository) NextID(ctx context.Context) (string, error) {
	var next string
	err := r.tables.write(func(s *state) error {
		s.ticketSeq++
		next = id.FormatTicketID(s.ticketSeq)
		return nil
	})
	return next, err
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	return r.tables.write(func(s *state) error {
		if _, exists := s.tickets.get(t.ID()); exists {
			return fmt.Errorf("ticket %s already exists", t.ID())
		}
		// Loaded ids move the sequence so new tickets never collide.
		if n, ok := id.TicketSequence(t.ID()); ok && n > s.ticketSeq {
			s.ticketSeq = n
		}
		s.tickets.put(t.ID(), t.Clone())
		return nil
	})
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	return r.tables.write(func(s *state) error {
		if _, exists := s.tickets.get(t.ID()); !exists {
			return ticket.ErrTicketNotFound
		}
		s.tickets.put(t.ID(), t.Clone())
		return nil
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	var found *ticket.Ticket
	r.tables.read(func(s *state) {
		if t, ok := s.tickets.get(ticketID); ok {
			found = t.Clone()
		}
	})
	if found == nil {
		return nil, ticket.ErrTicketNotFound
	}
	return found, nil
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	out := []*ticket.Ticket{}
	r.tables.read(func(s *state) {
		rows := s.tickets.values()
		// newest insert first, then stable by createdAt so ties keep that order
		for i := len(rows) - 1; i >= 0; i-- {
			if matches(rows[i], filter) {
				out = append(out, rows[i].Clone())
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *TicketRepository) DeleteByOrganization(ctx context.Context, organizationID string) (int, error) {
	removed := 0
	err := r.tables.write(func(s *state) error {
		for _, t := range s.tickets.values() {
			if t.OrganizationID() == organizationID {
				s.tickets.remove(t.ID())
				removed++
			}
		}
		return nil
	})
	return removed, err
}

func matches(t *ticket.Ticket, f ticket.Filter) bool {
	if f.OrganizationID != nil && t.OrganizationID() != *f.OrganizationID {
		return false
	}
	if f.Status != nil && t.Status() != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority() != *f.Priority {
		return false
	}
	if f.Category != nil && t.Category() != *f.Category {
		return false
	}
	if f.AssignedTo != nil && !t.IsAssignedTo(*f.AssignedTo) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		haystack := strings.ToLower(t.ID() + "\n" + t.Title() + "\n" + t.Description())
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}
