package usecases

import (
	"context"
	"sort"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/conversion/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/mapper"
)

type ListConversionRequestsQuery struct {
	ActorID string
	// PendingOnly keeps requests still waiting on the reader's own track.
	PendingOnly bool
}

type ListConversionRequestsUseCase struct {
	tickets ticket.Repository
	guard   *common.Guard
	logger  logger.Interface
}

func NewListConversionRequestsUseCase(tickets ticket.Repository, guard *common.Guard, logger logger.Interface) *ListConversionRequestsUseCase {
	return &ListConversionRequestsUseCase{
		tickets: tickets,
		guard:   guard,
		logger:  logger,
	}
}

// Execute lists conversion requests on visible tickets, newest request first.
func (uc *ListConversionRequestsUseCase) Execute(ctx context.Context, query ListConversionRequestsQuery) ([]*dto.ApprovalItemDTO, error) {
	uc.logger.Debugw("executing list conversion requests use case", "actor_id", query.ActorID, "pending_only", query.PendingOnly)

	actor, err := uc.guard.Actor(ctx, query.ActorID)
	if err != nil {
		return nil, err
	}

	tickets, err := uc.tickets.List(ctx, ticket.Filter{})
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, common.ToAppError(err)
	}

	ownTrack := access.OwnTrack(actor.Role())
	withRequests := make([]*ticket.Ticket, 0)
	for _, t := range access.VisibleTickets(actor, tickets) {
		request := t.ConversionRequest()
		if request == nil {
			continue
		}
		if query.PendingOnly && !request.Approval(ownTrack).IsPending() {
			continue
		}
		withRequests = append(withRequests, t)
	}

	sort.SliceStable(withRequests, func(i, j int) bool {
		return withRequests[i].ConversionRequest().CreatedAt().After(withRequests[j].ConversionRequest().CreatedAt())
	})

	return mapper.MapSlice(withRequests, dto.ToApprovalItemDTO), nil
}
