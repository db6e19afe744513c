package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/user/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	domainUser "github.com/thinkartha/smileybox/internal/domain/user"
	vo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

type ListUsersQuery struct {
	ActorID string
	// OrganizationID narrows the list to one organization plus internal
	// staff. Clients are always narrowed to their own.
	OrganizationID string
}

// GetUserUseCase serves the user directory reads.
type GetUserUseCase struct {
	users  domainUser.Repository
	guard  *common.Guard
	logger logger.Interface
}

func NewGetUserUseCase(users domainUser.Repository, guard *common.Guard, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		users:  users,
		guard:  guard,
		logger: logger,
	}
}

func (uc *GetUserUseCase) List(ctx context.Context, query ListUsersQuery) ([]*dto.UserDTO, error) {
	actor, err := uc.guard.Actor(ctx, query.ActorID)
	if err != nil {
		return nil, err
	}

	filter := domainUser.ListFilter{OrganizationID: query.OrganizationID, IncludeInternal: true}
	if actor.IsClient() {
		filter.OrganizationID = actor.OrganizationID()
	}

	users, err := uc.users.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, common.ToAppError(err)
	}
	return dto.ToUserDTOList(access.VisibleUsers(actor, users)), nil
}

func (uc *GetUserUseCase) GetByID(ctx context.Context, actorID, userID string) (*dto.UserDTO, error) {
	actor, err := uc.guard.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, common.ToAppError(err)
	}
	return uc.visible(actor, u)
}

// GetByEmail matches case-insensitively.
func (uc *GetUserUseCase) GetByEmail(ctx context.Context, actorID, email string) (*dto.UserDTO, error) {
	actor, err := uc.guard.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	normalized, err := vo.NormalizeEmail(email)
	if err != nil {
		return nil, errors.NewValidationError("invalid email", err.Error())
	}
	u, err := uc.users.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, common.ToAppError(err)
	}
	return uc.visible(actor, u)
}

func (uc *GetUserUseCase) visible(actor, u *domainUser.User) (*dto.UserDTO, error) {
	if !access.CanViewUser(actor, u) {
		return nil, errors.NewForbiddenError("user belongs to another organization", u.ID())
	}
	return dto.ToUserDTO(u), nil
}
