package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/activity/dto"
	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/mapper"
)

type ListActivitiesQuery struct {
	ActorID string
	// Limit caps the result; zero or anything above the feed limit uses the
	// feed limit.
	Limit int
}

type ListActivitiesUseCase struct {
	activities activity.Repository
	tickets    ticket.Repository
	guard      *common.Guard
	feedLimit  int
	logger     logger.Interface
}

func NewListActivitiesUseCase(
	activities activity.Repository,
	tickets ticket.Repository,
	guard *common.Guard,
	feedLimit int,
	logger logger.Interface,
) *ListActivitiesUseCase {
	return &ListActivitiesUseCase{
		activities: activities,
		tickets:    tickets,
		guard:      guard,
		feedLimit:  feedLimit,
		logger:     logger,
	}
}

// Execute returns the reader's visible activities, most recent first.
func (uc *ListActivitiesUseCase) Execute(ctx context.Context, query ListActivitiesQuery) ([]*dto.ActivityDTO, error) {
	uc.logger.Debugw("executing list activities use case", "actor_id", query.ActorID, "limit", query.Limit)

	actor, err := uc.guard.Actor(ctx, query.ActorID)
	if err != nil {
		return nil, err
	}

	all, err := uc.activities.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list activities", "error", err)
		return nil, common.ToAppError(err)
	}

	var ticketOrgs map[string]string
	if !actor.IsInternal() {
		tickets, err := uc.tickets.List(ctx, ticket.Filter{})
		if err != nil {
			uc.logger.Errorw("failed to list tickets", "error", err)
			return nil, common.ToAppError(err)
		}
		ticketOrgs = mapper.Index(tickets, (*ticket.Ticket).ID, (*ticket.Ticket).OrganizationID)
	}

	visible := access.VisibleActivities(actor, all, ticketOrgs)

	limit := uc.feedLimit
	if query.Limit > 0 && (limit <= 0 || query.Limit < limit) {
		limit = query.Limit
	}
	if limit > 0 && len(visible) > limit {
		visible = visible[:limit]
	}

	return dto.ToActivityDTOList(visible), nil
}
