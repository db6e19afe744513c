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

type ChangeStatusCommand struct {
	ActorID   string `json:"-"`
	TicketID  string `json:"ticket_id" validate:"required"`
	NewStatus string `json:"status" validate:"required"`
}

type ChangeStatusResult struct {
	TicketID  string
	OldStatus string
	NewStatus string
	UpdatedAt time.Time
}

type ChangeStatusUseCase struct {
	tickets  ticket.Repository
	guard    *common.Guard
	txMgr    db.TransactionManager
	recorder common.ActivityRecorder
	clock    biztime.Clock
	logger   logger.Interface
}

func NewChangeStatusUseCase(
	tickets ticket.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	recorder common.ActivityRecorder,
	clock biztime.Clock,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		tickets:  tickets,
		guard:    guard,
		txMgr:    txMgr,
		recorder: recorder,
		clock:    clock,
		logger:   logger,
	}
}

// Execute sets any status; there is no transition graph. Moving to
// resolved also records a ticket-resolved activity.
func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "new_status", cmd.NewStatus)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid change status command", "error", err)
		return nil, err
	}

	newStatus, err := vo.NewTicketStatus(cmd.NewStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	actor, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceTicket, access.ActionUpdate)
	if err != nil {
		return nil, err
	}

	var result *ChangeStatusResult
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := common.LoadVisibleTicket(txCtx, uc.tickets, actor, cmd.TicketID)
		if err != nil {
			return err
		}

		oldStatus := t.Status()
		if err := t.ChangeStatus(newStatus, uc.clock()); err != nil {
			return common.ToValidationError(err)
		}
		if err := uc.tickets.Update(txCtx, t); err != nil {
			return common.ToAppError(err)
		}

		description := fmt.Sprintf("Ticket %s status changed to %s", t.ID(), newStatus)
		if err := uc.recorder.Record(txCtx, activity.TypeTicketUpdated, description, actor.ID(), t.ID()); err != nil {
			return common.ToAppError(err)
		}
		if newStatus.IsResolved() {
			if err := uc.recorder.Record(txCtx, activity.TypeTicketResolved, fmt.Sprintf("Ticket %s resolved", t.ID()), actor.ID(), t.ID()); err != nil {
				return common.ToAppError(err)
			}
		}

		result = &ChangeStatusResult{
			TicketID:  t.ID(),
			OldStatus: oldStatus.String(),
			NewStatus: newStatus.String(),
			UpdatedAt: t.UpdatedAt(),
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("change status failed", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket status changed successfully",
		"ticket_id", result.TicketID,
		"old_status", result.OldStatus,
		"new_status", result.NewStatus,
	)
	return result, nil
}
