package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/user/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	domainUser "github.com/thinkartha/smileybox/internal/domain/user"
	vo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

// UpdateUserCommand changes the non-nil fields. Role and OrganizationID are
// applied together; when only one is set the other keeps its current value.
type UpdateUserCommand struct {
	ActorID        string  `json:"-"`
	UserID         string  `json:"user_id" validate:"required"`
	Name           *string `json:"name" validate:"omitempty,max=100"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Role           *string `json:"role"`
	OrganizationID *string `json:"organization_id"`
}

type UpdateUserUseCase struct {
	users         domainUser.Repository
	organizations organization.Repository
	tickets       ticket.Repository
	guard         *common.Guard
	txMgr         db.TransactionManager
	clock         biztime.Clock
	logger        logger.Interface
}

func NewUpdateUserUseCase(
	users domainUser.Repository,
	organizations organization.Repository,
	tickets ticket.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		users:         users,
		organizations: organizations,
		tickets:       tickets,
		guard:         guard,
		txMgr:         txMgr,
		clock:         clock,
		logger:        logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing update user use case", "user_id", cmd.UserID)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid update user command", "error", err)
		return nil, err
	}

	if _, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceUser, access.ActionManage); err != nil {
		return nil, err
	}

	var updated *domainUser.User
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		u, err := uc.users.GetByID(txCtx, cmd.UserID)
		if err != nil {
			return common.ToAppError(err)
		}

		if cmd.Name != nil {
			if err := u.Rename(*cmd.Name); err != nil {
				return common.ToValidationError(err)
			}
		}
		if cmd.Email != nil {
			if err := u.ChangeEmail(*cmd.Email); err != nil {
				return common.ToValidationError(err)
			}
		}
		if cmd.Role != nil || cmd.OrganizationID != nil {
			wasInternal := u.Role().IsInternal()
			if err := uc.changeRole(txCtx, u, cmd.Role, cmd.OrganizationID); err != nil {
				return err
			}
			// Only internal users may stay assignees.
			if wasInternal && !u.Role().IsInternal() {
				unassigned, err := unassignUser(txCtx, uc.tickets, u.ID(), uc.clock())
				if err != nil {
					return err
				}
				if len(unassigned) > 0 {
					uc.logger.Infow("tickets unassigned after role change", "user_id", u.ID(), "tickets", unassigned)
				}
			}
		}

		if err := uc.users.Update(txCtx, u); err != nil {
			return common.ToAppError(err)
		}
		updated = u
		return nil
	})
	if err != nil {
		uc.logger.Errorw("update user failed", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("user updated successfully", "user_id", updated.ID())
	return dto.ToUserDTO(updated), nil
}

func (uc *UpdateUserUseCase) changeRole(ctx context.Context, u *domainUser.User, roleName, organizationID *string) error {
	role := u.Role()
	if roleName != nil {
		r, err := vo.NewRole(*roleName)
		if err != nil {
			return errors.NewValidationError("invalid role", err.Error())
		}
		role = r
	}

	orgID := u.OrganizationID()
	if organizationID != nil {
		orgID = *organizationID
	}

	resolved, err := resolveOrganization(ctx, uc.organizations, role, orgID)
	if err != nil {
		return err
	}
	return common.ToValidationError(u.ChangeRole(role, resolved))
}
