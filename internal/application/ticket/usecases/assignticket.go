package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/domain/user"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type AssignTicketCommand struct {
	ActorID  string `json:"-"`
	TicketID string `json:"ticket_id" validate:"required"`
	// AssigneeID nil or empty unassigns the ticket.
	AssigneeID *string `json:"assignee_id"`
}

type AssignTicketResult struct {
	TicketID   string
	AssigneeID *string
	UpdatedAt  time.Time
}

type AssignTicketUseCase struct {
	tickets  ticket.Repository
	users    user.Repository
	guard    *common.Guard
	txMgr    db.TransactionManager
	recorder common.ActivityRecorder
	clock    biztime.Clock
	logger   logger.Interface
}

func NewAssignTicketUseCase(
	tickets ticket.Repository,
	users user.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	recorder common.ActivityRecorder,
	clock biztime.Clock,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		tickets:  tickets,
		users:    users,
		guard:    guard,
		txMgr:    txMgr,
		recorder: recorder,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error) {
	uc.logger.Infow("executing assign ticket use case", "ticket_id", cmd.TicketID, "assignee_id", cmd.AssigneeID)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid assign ticket command", "error", err)
		return nil, err
	}

	actor, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceTicket, access.ActionUpdate)
	if err != nil {
		return nil, err
	}

	var assignee *user.User
	if cmd.AssigneeID != nil && *cmd.AssigneeID != "" {
		assignee, err = uc.users.GetByID(ctx, *cmd.AssigneeID)
		if err != nil {
			uc.logger.Errorw("failed to load assignee", "assignee_id", *cmd.AssigneeID, "error", err)
			return nil, common.ToAppError(err)
		}
		if !assignee.IsInternal() {
			return nil, errors.NewValidationError("tickets can only be assigned to internal staff", assignee.ID())
		}
	}

	var result *AssignTicketResult
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := common.LoadVisibleTicket(txCtx, uc.tickets, actor, cmd.TicketID)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Ticket %s unassigned", t.ID())
		var assigneeID *string
		if assignee != nil {
			id := assignee.ID()
			assigneeID = &id
			description = fmt.Sprintf("Ticket %s assigned to %s", t.ID(), assignee.Name())
		}

		t.AssignTo(assigneeID, uc.clock())
		if err := uc.tickets.Update(txCtx, t); err != nil {
			return common.ToAppError(err)
		}
		if err := uc.recorder.Record(txCtx, activity.TypeTicketUpdated, description, actor.ID(), t.ID()); err != nil {
			return common.ToAppError(err)
		}

		result = &AssignTicketResult{TicketID: t.ID(), AssigneeID: t.AssignedTo(), UpdatedAt: t.UpdatedAt()}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("assign ticket failed", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket assigned successfully", "ticket_id", result.TicketID, "assignee_id", result.AssigneeID)
	return result, nil
}
