package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/organization/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/id"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type CreateOrganizationCommand struct {
	ActorID string `json:"-"`
	Name    string `json:"name" validate:"required,max=120"`
	// Plan defaults to starter when empty.
	Plan         string `json:"plan" validate:"omitempty,oneof=starter professional enterprise"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
}

type CreateOrganizationUseCase struct {
	organizations organization.Repository
	guard         *common.Guard
	txMgr         db.TransactionManager
	clock         biztime.Clock
	logger        logger.Interface
}

func NewCreateOrganizationUseCase(
	organizations organization.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	clock biztime.Clock,
	logger logger.Interface,
) *CreateOrganizationUseCase {
	return &CreateOrganizationUseCase{
		organizations: organizations,
		guard:         guard,
		txMgr:         txMgr,
		clock:         clock,
		logger:        logger,
	}
}

func (uc *CreateOrganizationUseCase) Execute(ctx context.Context, cmd CreateOrganizationCommand) (*dto.OrganizationDTO, error) {
	uc.logger.Infow("executing create organization use case", "name", cmd.Name, "plan", cmd.Plan)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid create organization command", "error", err)
		return nil, err
	}

	plan, err := organization.NewPlan(cmd.Plan)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if _, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceOrganization, access.ActionManage); err != nil {
		return nil, err
	}

	o, err := organization.NewOrganization(id.NewOrganizationID(), cmd.Name, plan, cmd.ContactEmail, uc.clock())
	if err != nil {
		return nil, common.ToValidationError(err)
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return common.ToAppError(uc.organizations.Create(txCtx, o))
	})
	if err != nil {
		uc.logger.Errorw("create organization failed", "error", err)
		return nil, err
	}

	uc.logger.Infow("organization created successfully", "organization_id", o.ID(), "plan", o.Plan())
	return dto.ToOrganizationDTO(o), nil
}
