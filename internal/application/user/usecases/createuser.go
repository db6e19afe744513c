package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/user/dto"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	domainUser "github.com/thinkartha/smileybox/internal/domain/user"
	vo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/id"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type CreateUserCommand struct {
	ActorID string `json:"-"`
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Role    string `json:"role" validate:"required"`
	// OrganizationID is required for clients and ignored for internal roles.
	OrganizationID string `json:"organization_id"`
	Password       string `json:"password" validate:"omitempty,min=8,max=72"`
}

// CreateUserUseCase handles admin-side account creation.
type CreateUserUseCase struct {
	users         domainUser.Repository
	organizations organization.Repository
	hasher        domainUser.PasswordHasher
	guard         *common.Guard
	txMgr         db.TransactionManager
	clock         biztime.Clock
	logger        logger.Interface
}

func NewCreateUserUseCase(
	users domainUser.Repository,
	organizations organization.Repository,
	hasher domainUser.PasswordHasher,
	guard *common.Guard,
	txMgr db.TransactionManager,
	clock biztime.Clock,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		users:         users,
		organizations: organizations,
		hasher:        hasher,
		guard:         guard,
		txMgr:         txMgr,
		clock:         clock,
		logger:        logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing create user use case", "email", utils.MaskEmail(cmd.Email), "role", cmd.Role)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Errorw("invalid create user command", "error", err)
		return nil, err
	}

	role, err := vo.NewRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError("invalid role", err.Error())
	}

	if _, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceUser, access.ActionManage); err != nil {
		return nil, err
	}

	orgID, err := resolveOrganization(ctx, uc.organizations, role, cmd.OrganizationID)
	if err != nil {
		return nil, err
	}

	u, err := domainUser.NewUser(id.NewUserID(), cmd.Name, cmd.Email, role, orgID, uc.clock())
	if err != nil {
		uc.logger.Errorw("failed to create user entity", "error", err)
		return nil, common.ToValidationError(err)
	}

	if cmd.Password != "" {
		hash, err := uc.hasher.Hash(cmd.Password)
		if err != nil {
			uc.logger.Errorw("failed to hash password", "error", err)
			return nil, errors.NewInternalError("failed to hash password")
		}
		u.SetPasswordHash(hash)
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return common.ToAppError(uc.users.Create(txCtx, u))
	})
	if err != nil {
		uc.logger.Errorw("create user failed", "email", utils.MaskEmail(cmd.Email), "error", err)
		return nil, err
	}

	uc.logger.Infow("user created successfully", "user_id", u.ID(), "role", u.Role())
	return dto.ToUserDTO(u), nil
}

// resolveOrganization returns the organization a client belongs to after
// checking it exists. Internal roles never carry one.
func resolveOrganization(ctx context.Context, organizations organization.Repository, role vo.Role, organizationID string) (*string, error) {
	if role.IsInternal() {
		return nil, nil
	}
	if organizationID == "" {
		return nil, errors.NewValidationError(domainUser.ErrOrganizationRequired.Error())
	}
	if _, err := organizations.GetByID(ctx, organizationID); err != nil {
		return nil, common.ToAppError(err)
	}
	return &organizationID, nil
}
