package usecases

import (
	"context"
	"fmt"

	"github.com/thinkartha/smileybox/internal/application/common"
	ticketdto "github.com/thinkartha/smileybox/internal/application/ticket/dto"
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

type UpdateApprovalCommand struct {
	ActorID  string `json:"-"`
	TicketID string `json:"ticket_id" validate:"required"`
	Track    string `json:"track" validate:"required,oneof=internal client"`
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

type UpdateApprovalResult struct {
	Request *ticketdto.ConversionRequestDTO
	// Completed is true only for the decision that made both tracks approved.
	Completed bool
}

type UpdateApprovalUseCase struct {
	tickets  ticket.Repository
	guard    *common.Guard
	txMgr    db.TransactionManager
	recorder common.ActivityRecorder
	clock    biztime.Clock
	logger   logger.Interface
}

func NewUpdateApprovalUseCase(
	tickets ticket.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	recorder common.ActivityRecorder,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdateApprovalUseCase {
	return &UpdateApprovalUseCase{
		tickets:  tickets,
		guard:    guard,
		txMgr:    txMgr,
		recorder: recorder,
		clock:    clock,
		logger:   logger,
	}
}

// Execute signs one approval track. Internal roles sign only the internal
// track and clients only the client track of their own tickets. A track
// leaves pending once and never changes again.
func (uc *UpdateApprovalUseCase) Execute(ctx context.Context, cmd UpdateApprovalCommand) (*UpdateApprovalResult, error) {
	uc.logger.Infow("executing update approval use case",
		"ticket_id", cmd.TicketID,
		"track", cmd.Track,
		"decision", cmd.Decision,
		"actor_id", cmd.ActorID,
	)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid update approval command", "error", err)
		return nil, err
	}

	track, err := vo.NewApprovalTrack(cmd.Track)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	decision, err := vo.NewDecision(cmd.Decision)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	actor, err := uc.guard.Require(ctx, cmd.ActorID, access.ApprovalResource(track), access.ActionDecide)
	if err != nil {
		return nil, err
	}

	var result *UpdateApprovalResult
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := common.LoadVisibleTicket(txCtx, uc.tickets, actor, cmd.TicketID)
		if err != nil {
			return err
		}

		completed, err := t.DecideApproval(track, decision, uc.clock())
		if err != nil {
			return common.ToValidationError(err)
		}
		if err := uc.tickets.Update(txCtx, t); err != nil {
			return common.ToAppError(err)
		}

		activityType := activity.TypeTicketUpdated
		description := fmt.Sprintf("Conversion %s approval %s on %s", track, decision, t.ID())
		if completed {
			activityType = activity.TypeConversionApproved
			description = fmt.Sprintf("Conversion approved: %s to %s", t.ID(), t.ConversionRequest().ProposedType())
		}
		if err := uc.recorder.Record(txCtx, activityType, description, actor.ID(), t.ID()); err != nil {
			return common.ToAppError(err)
		}

		result = &UpdateApprovalResult{
			Request:   ticketdto.ToConversionRequestDTO(t.ConversionRequest()),
			Completed: completed,
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("update approval failed", "ticket_id", cmd.TicketID, "track", cmd.Track, "error", err)
		return nil, err
	}

	uc.logger.Infow("approval updated successfully",
		"ticket_id", cmd.TicketID,
		"track", track,
		"decision", decision,
		"completed", result.Completed,
	)
	return result, nil
}
