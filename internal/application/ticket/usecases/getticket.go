package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/ticket/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/services/markdown"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type GetTicketQuery struct {
	ActorID  string
	TicketID string
	// RenderMarkdown fills MessageDTO.ContentHTML.
	RenderMarkdown bool
}

type GetTicketUseCase struct {
	tickets  ticket.Repository
	guard    *common.Guard
	renderer markdown.Renderer
	calendar biztime.Calendar
	logger   logger.Interface
}

func NewGetTicketUseCase(
	tickets ticket.Repository,
	guard *common.Guard,
	renderer markdown.Renderer,
	calendar biztime.Calendar,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		tickets:  tickets,
		guard:    guard,
		renderer: renderer,
		calendar: calendar,
		logger:   logger,
	}
}

// Execute returns the ticket with the messages the reader may see.
func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	uc.logger.Debugw("executing get ticket use case", "ticket_id", query.TicketID, "actor_id", query.ActorID)

	if err := utils.ValidateID(query.TicketID); err != nil {
		return nil, err
	}

	actor, err := uc.guard.Actor(ctx, query.ActorID)
	if err != nil {
		return nil, err
	}

	t, err := common.LoadVisibleTicket(ctx, uc.tickets, actor, query.TicketID)
	if err != nil {
		uc.logger.Warnw("get ticket rejected", "ticket_id", query.TicketID, "actor_id", actor.ID(), "error", err)
		return nil, err
	}

	result := dto.ToTicketDTO(t, access.VisibleMessages(actor, t), uc.calendar)

	if query.RenderMarkdown && uc.renderer != nil {
		for i := range result.Messages {
			html, err := uc.renderer.ToHTML(result.Messages[i].Content)
			if err != nil {
				uc.logger.Warnw("failed to render message", "message_id", result.Messages[i].ID, "error", err)
				continue
			}
			result.Messages[i].ContentHTML = html
		}
	}

	return result, nil
}
