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
	"github.com/thinkartha/smileybox/internal/shared/services/sanitize"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type RequestConversionCommand struct {
	ActorID      string `json:"-"`
	TicketID     string `json:"ticket_id" validate:"required"`
	ProposedType string `json:"proposed_type" validate:"required,oneof=feature enhancement"`
	Reason       string `json:"reason" validate:"required,notblank"`
}

type RequestConversionUseCase struct {
	tickets   ticket.Repository
	guard     *common.Guard
	txMgr     db.TransactionManager
	recorder  common.ActivityRecorder
	sanitizer sanitize.Sanitizer
	clock     biztime.Clock
	logger    logger.Interface
}

func NewRequestConversionUseCase(
	tickets ticket.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	recorder common.ActivityRecorder,
	sanitizer sanitize.Sanitizer,
	clock biztime.Clock,
	logger logger.Interface,
) *RequestConversionUseCase {
	return &RequestConversionUseCase{
		tickets:   tickets,
		guard:     guard,
		txMgr:     txMgr,
		recorder:  recorder,
		sanitizer: sanitizer,
		clock:     clock,
		logger:    logger,
	}
}

// Execute proposes turning a ticket into feature or enhancement work. Both
// approval tracks start pending; a ticket carries at most one request.
func (uc *RequestConversionUseCase) Execute(ctx context.Context, cmd RequestConversionCommand) (*ticketdto.ConversionRequestDTO, error) {
	uc.logger.Infow("executing request conversion use case",
		"ticket_id", cmd.TicketID,
		"proposed_type", cmd.ProposedType,
		"actor_id", cmd.ActorID,
	)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid request conversion command", "error", err)
		return nil, err
	}

	proposedType, err := vo.NewConversionType(cmd.ProposedType)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	actor, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceConversion, access.ActionRequest)
	if err != nil {
		return nil, err
	}

	reason := uc.sanitizer.Text(cmd.Reason)

	var result *ticketdto.ConversionRequestDTO
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := common.LoadVisibleTicket(txCtx, uc.tickets, actor, cmd.TicketID)
		if err != nil {
			return err
		}
		if t.HasConversionRequest() {
			return errors.NewConflictError(ticket.ErrConversionExists.Error(), t.ID())
		}

		now := uc.clock()
		request, err := ticket.NewConversionRequest(t.ID(), proposedType, reason, actor.ID(), now)
		if err != nil {
			return common.ToValidationError(err)
		}
		if err := t.RequestConversion(request, now); err != nil {
			return common.ToValidationError(err)
		}
		if err := uc.tickets.Update(txCtx, t); err != nil {
			return common.ToAppError(err)
		}

		description := fmt.Sprintf("Conversion requested: %s to %s", t.ID(), proposedType)
		if err := uc.recorder.Record(txCtx, activity.TypeConversionRequested, description, actor.ID(), t.ID()); err != nil {
			return common.ToAppError(err)
		}

		result = ticketdto.ToConversionRequestDTO(t.ConversionRequest())
		return nil
	})
	if err != nil {
		uc.logger.Errorw("request conversion failed", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("conversion requested successfully", "ticket_id", cmd.TicketID, "proposed_type", proposedType)
	return result, nil
}
