package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/organization/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

// UpdateOrganizationCommand changes the non-nil fields only.
type UpdateOrganizationCommand struct {
	ActorID        string  `json:"-"`
	OrganizationID string  `json:"organization_id" validate:"required"`
	Name           *string `json:"name" validate:"omitempty,max=120"`
	Plan           *string `json:"plan" validate:"omitempty,oneof=starter professional enterprise"`
	ContactEmail   *string `json:"contact_email" validate:"omitempty,email"`
}

type UpdateOrganizationUseCase struct {
	organizations organization.Repository
	guard         *common.Guard
	txMgr         db.TransactionManager
	logger        logger.Interface
}

func NewUpdateOrganizationUseCase(
	organizations organization.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	logger logger.Interface,
) *UpdateOrganizationUseCase {
	return &UpdateOrganizationUseCase{
		organizations: organizations,
		guard:         guard,
		txMgr:         txMgr,
		logger:        logger,
	}
}

func (uc *UpdateOrganizationUseCase) Execute(ctx context.Context, cmd UpdateOrganizationCommand) (*dto.OrganizationDTO, error) {
	uc.logger.Infow("executing update organization use case", "organization_id", cmd.OrganizationID)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid update organization command", "error", err)
		return nil, err
	}

	var plan *organization.Plan
	if cmd.Plan != nil {
		p, err := organization.NewPlan(*cmd.Plan)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		plan = &p
	}

	if _, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceOrganization, access.ActionManage); err != nil {
		return nil, err
	}

	var updated *organization.Organization
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		o, err := uc.organizations.GetByID(txCtx, cmd.OrganizationID)
		if err != nil {
			return common.ToAppError(err)
		}
		if err := o.Update(cmd.Name, plan, cmd.ContactEmail); err != nil {
			return common.ToValidationError(err)
		}
		if err := uc.organizations.Update(txCtx, o); err != nil {
			return common.ToAppError(err)
		}
		updated = o
		return nil
	})
	if err != nil {
		uc.logger.Errorw("update organization failed", "organization_id", cmd.OrganizationID, "error", err)
		return nil, err
	}

	uc.logger.Infow("organization updated successfully", "organization_id", updated.ID())
	return dto.ToOrganizationDTO(updated), nil
}
