package common

import (
	"context"

	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/domain/user"
	apperrors "github.com/thinkartha/smileybox/internal/shared/errors"
)

// LoadVisibleTicket fetches a ticket the actor may see. Unknown ids are not
// found; another organization's ticket is forbidden.
func LoadVisibleTicket(ctx context.Context, repo ticket.Repository, actor *user.User, ticketID string) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, ToAppError(err)
	}
	if !access.CanViewTicket(actor, t) {
		return nil, apperrors.NewForbiddenError("ticket belongs to another organization", ticketID)
	}
	return t, nil
}
