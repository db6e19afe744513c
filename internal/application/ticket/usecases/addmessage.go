package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/id"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/services/sanitize"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type AddMessageCommand struct {
	ActorID    string `json:"-"`
	TicketID   string `json:"ticket_id" validate:"required"`
	Content    string `json:"content" validate:"required,notblank"`
	IsInternal bool   `json:"is_internal"`
}

type AddMessageResult struct {
	MessageID string
	CreatedAt time.Time
}

type AddMessageUseCase struct {
	tickets   ticket.Repository
	guard     *common.Guard
	txMgr     db.TransactionManager
	recorder  common.ActivityRecorder
	sanitizer sanitize.Sanitizer
	clock     biztime.Clock
	logger    logger.Interface
}

func NewAddMessageUseCase(
	tickets ticket.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	recorder common.ActivityRecorder,
	sanitizer sanitize.Sanitizer,
	clock biztime.Clock,
	logger logger.Interface,
) *AddMessageUseCase {
	return &AddMessageUseCase{
		tickets:   tickets,
		guard:     guard,
		txMgr:     txMgr,
		recorder:  recorder,
		sanitizer: sanitizer,
		clock:     clock,
		logger:    logger,
	}
}

// Execute posts a message or, with IsInternal, a staff-only note.
func (uc *AddMessageUseCase) Execute(ctx context.Context, cmd AddMessageCommand) (*AddMessageResult, error) {
	uc.logger.Infow("executing add message use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.ActorID,
		"is_internal", cmd.IsInternal,
	)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid add message command", "error", err)
		return nil, err
	}

	actor, err := uc.guard.Require(ctx, cmd.ActorID, access.MessageResource(cmd.IsInternal), access.ActionAdd)
	if err != nil {
		return nil, err
	}

	// Content is markdown and is stored as written; rendering sanitizes it.
	content := strings.TrimSpace(cmd.Content)
	if !uc.sanitizer.HasText(content) {
		return nil, errors.NewValidationError(ticket.ErrContentRequired.Error())
	}

	var result *AddMessageResult
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := common.LoadVisibleTicket(txCtx, uc.tickets, actor, cmd.TicketID)
		if err != nil {
			return err
		}

		now := uc.clock()
		m, err := ticket.NewMessage(id.NewMessageID(), t.ID(), actor.ID(), content, cmd.IsInternal, now)
		if err != nil {
			return common.ToValidationError(err)
		}
		if err := t.AddMessage(m, now); err != nil {
			return common.ToValidationError(err)
		}
		if err := uc.tickets.Update(txCtx, t); err != nil {
			return common.ToAppError(err)
		}
		if err := uc.recorder.Record(txCtx, activity.TypeMessageAdded, "New message on "+t.ID(), actor.ID(), t.ID()); err != nil {
			return common.ToAppError(err)
		}

		result = &AddMessageResult{MessageID: m.ID(), CreatedAt: m.CreatedAt()}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("add message failed", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("message added successfully", "message_id", result.MessageID, "ticket_id", cmd.TicketID)
	return result, nil
}
