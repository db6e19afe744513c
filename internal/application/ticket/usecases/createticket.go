package usecases

import (
	"context"
	"time"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	vo "github.com/thinkartha/smileybox/internal/domain/ticket/valueobjects"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/services/sanitize"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type CreateTicketCommand struct {
	ActorID     string `json:"-"`
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"required,notblank"`
	// Priority defaults to medium and Category to support when empty.
	Priority string `json:"priority"`
	Category string `json:"category"`
	// OrganizationID is ignored for client users, who always file into
	// their own organization.
	OrganizationID string `json:"organization_id"`
}

type CreateTicketResult struct {
	TicketID  string
	Status    string
	CreatedAt time.Time
}

type CreateTicketUseCase struct {
	tickets       ticket.Repository
	organizations organization.Repository
	guard         *common.Guard
	txMgr         db.TransactionManager
	recorder      common.ActivityRecorder
	sanitizer     sanitize.Sanitizer
	clock         biztime.Clock
	logger        logger.Interface
}

func NewCreateTicketUseCase(
	tickets ticket.Repository,
	organizations organization.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	recorder common.ActivityRecorder,
	sanitizer sanitize.Sanitizer,
	clock biztime.Clock,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		tickets:       tickets,
		organizations: organizations,
		guard:         guard,
		txMgr:         txMgr,
		recorder:      recorder,
		sanitizer:     sanitizer,
		clock:         clock,
		logger:        logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "actor_id", cmd.ActorID, "organization_id", cmd.OrganizationID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create ticket command", "error", err)
		return nil, err
	}

	actor, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceTicket, access.ActionCreate)
	if err != nil {
		return nil, err
	}

	organizationID := cmd.OrganizationID
	if actor.IsClient() {
		organizationID = actor.OrganizationID()
	}
	if organizationID == "" {
		return nil, errors.NewValidationError("organization_id is required")
	}
	if _, err := uc.organizations.GetByID(ctx, organizationID); err != nil {
		uc.logger.Errorw("failed to load organization", "organization_id", organizationID, "error", err)
		return nil, common.ToAppError(err)
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	category, err := vo.NewCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	title := uc.sanitizer.Text(cmd.Title)
	description := uc.sanitizer.Text(cmd.Description)

	var created *ticket.Ticket
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		ticketID, err := uc.tickets.NextID(txCtx)
		if err != nil {
			return common.ToAppError(err)
		}

		t, err := ticket.NewTicket(ticketID, organizationID, title, description, priority, category, actor.ID(), uc.clock())
		if err != nil {
			return common.ToValidationError(err)
		}
		if err := uc.tickets.Create(txCtx, t); err != nil {
			return common.ToAppError(err)
		}
		if err := uc.recorder.Record(txCtx, activity.TypeTicketCreated, "New ticket: "+t.Title(), actor.ID(), t.ID()); err != nil {
			return common.ToAppError(err)
		}
		created = t
		return nil
	})
	if err != nil {
		uc.logger.Errorw("create ticket failed", "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created successfully",
		"ticket_id", created.ID(),
		"organization_id", created.OrganizationID(),
		"priority", created.Priority(),
	)

	return &CreateTicketResult{
		TicketID:  created.ID(),
		Status:    created.Status().String(),
		CreatedAt: created.CreatedAt(),
	}, nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	return utils.ValidateStruct(cmd)
}
