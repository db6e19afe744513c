package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/organization/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

type ListOrganizationsUseCase struct {
	organizations organization.Repository
	guard         *common.Guard
	logger        logger.Interface
}

func NewListOrganizationsUseCase(organizations organization.Repository, guard *common.Guard, logger logger.Interface) *ListOrganizationsUseCase {
	return &ListOrganizationsUseCase{
		organizations: organizations,
		guard:         guard,
		logger:        logger,
	}
}

// Execute lists organizations in creation order; clients get only their own.
func (uc *ListOrganizationsUseCase) Execute(ctx context.Context, actorID string) ([]*dto.OrganizationDTO, error) {
	actor, err := uc.guard.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	orgs, err := uc.organizations.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list organizations", "error", err)
		return nil, common.ToAppError(err)
	}

	return dto.ToOrganizationDTOList(access.VisibleOrganizations(actor, orgs)), nil
}

// GetOrganization looks one organization up by id.
func (uc *ListOrganizationsUseCase) GetOrganization(ctx context.Context, actorID, organizationID string) (*dto.OrganizationDTO, error) {
	actor, err := uc.guard.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	o, err := uc.organizations.GetByID(ctx, organizationID)
	if err != nil {
		return nil, common.ToAppError(err)
	}
	if !access.CanViewOrganization(actor, o.ID()) {
		return nil, errors.NewForbiddenError("organization belongs to another client", organizationID)
	}
	return dto.ToOrganizationDTO(o), nil
}
