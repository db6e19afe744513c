package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type ChangePriorityCommand struct {
	ActorID  string `json:"-"`
	TicketID string `json:"ticket_id" validate:"required"`
	Priority string `json:"priority" validate:"required"`
}

type ChangePriorityResult struct {
	TicketID  string
	Priority  string
	UpdatedAt time.Time
}

type ChangePriorityUseCase struct {
	tickets  ticket.Repository
	guard    *common.Guard
	txMgr    db.TransactionManager
	recorder common.ActivityRecorder
	clock    biztime.Clock
	logger   logger.Interface
}

func NewChangePriorityUseCase(
	tickets ticket.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	recorder common.ActivityRecorder,
	clock biztime.Clock,
	logger logger.Interface,
) *ChangePriorityUseCase {
	return &ChangePriorityUseCase{
		tickets:  tickets,
		guard:    guard,
		txMgr:    txMgr,
		recorder: recorder,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *ChangePriorityUseCase) Execute(ctx context.Context, cmd ChangePriorityCommand) (*ChangePriorityResult, error) {
	uc.logger.Infow("executing change priority use case", "ticket_id", cmd.TicketID, "priority", cmd.Priority)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid change priority command", "error", err)
		return nil, err
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	actor, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceTicket, access.ActionUpdate)
	if err != nil {
		return nil, err
	}

	var result *ChangePriorityResult
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := common.LoadVisibleTicket(txCtx, uc.tickets, actor, cmd.TicketID)
		if err != nil {
			return err
		}
		if err := t.ChangePriority(priority, uc.clock()); err != nil {
			return common.ToValidationError(err)
		}
		if err := uc.tickets.Update(txCtx, t); err != nil {
			return common.ToAppError(err)
		}

		description := fmt.Sprintf("Ticket %s priority changed to %s", t.ID(), priority)
		if err := uc.recorder.Record(txCtx, activity.TypeTicketUpdated, description, actor.ID(), t.ID()); err != nil {
			return common.ToAppError(err)
		}

		result = &ChangePriorityResult{TicketID: t.ID(), Priority: priority.String(), UpdatedAt: t.UpdatedAt()}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("change priority failed", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket priority changed successfully", "ticket_id", result.TicketID, "priority", result.Priority)
	return result, nil
}
