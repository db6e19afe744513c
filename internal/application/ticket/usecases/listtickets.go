package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/ticket/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

// ListTicketsQuery filters the listing; empty fields match everything.
type ListTicketsQuery struct {
	ActorID  string
	Status   string
	Priority string
	Category string
	// OrganizationID is ignored for client readers.
	OrganizationID string
	AssignedTo     string
	Search         string
}

type ListTicketsUseCase struct {
	tickets ticket.Repository
	guard   *common.Guard
	logger  logger.Interface
}

func NewListTicketsUseCase(tickets ticket.Repository, guard *common.Guard, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		tickets: tickets,
		guard:   guard,
		logger:  logger,
	}
}

// Execute lists visible tickets, newest first.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketListItemDTO, error) {
	uc.logger.Debugw("executing list tickets use case",
		"actor_id", query.ActorID,
		"status", query.Status,
		"priority", query.Priority,
		"search", query.Search,
	)

	actor, err := uc.guard.Actor(ctx, query.ActorID)
	if err != nil {
		return nil, err
	}

	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}
	if actor.IsClient() {
		orgID := actor.OrganizationID()
		filter.OrganizationID = &orgID
	}

	tickets, err := uc.tickets.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, common.ToAppError(err)
	}

	return dto.ToTicketListItemDTOs(access.VisibleTickets(actor, tickets)), nil
}

func (uc *ListTicketsUseCase) buildFilter(query ListTicketsQuery) (ticket.Filter, error) {
	filter := ticket.Filter{Search: query.Search}

	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Priority = &priority
	}
	if query.Category != "" {
		category, err := vo.NewCategory(query.Category)
		if err != nil {
			return filter, errors.NewValidationError(err.Error())
		}
		filter.Category = &category
	}
	if query.OrganizationID != "" {
		orgID := query.OrganizationID
		filter.OrganizationID = &orgID
	}
	if query.AssignedTo != "" {
		assignee := query.AssignedTo
		filter.AssignedTo = &assignee
	}
	return filter, nil
}
