package usecases

import (
	"context"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/domain/user"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type DeleteOrganizationCommand struct {
	ActorID        string `json:"-"`
	OrganizationID string `json:"organization_id" validate:"required"`
}

type DeleteOrganizationResult struct {
	OrganizationID  string
	UsersDeleted    int
	TicketsDeleted  int
	InvoicesDeleted int
}

type DeleteOrganizationUseCase struct {
	organizations organization.Repository
	users         user.Repository
	tickets       ticket.Repository
	invoices      invoice.Repository
	guard         *common.Guard
	txMgr         db.TransactionManager
	logger        logger.Interface
}

func NewDeleteOrganizationUseCase(
	organizations organization.Repository,
	users user.Repository,
	tickets ticket.Repository,
	invoices invoice.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	logger logger.Interface,
) *DeleteOrganizationUseCase {
	return &DeleteOrganizationUseCase{
		organizations: organizations,
		users:         users,
		tickets:       tickets,
		invoices:      invoices,
		guard:         guard,
		txMgr:         txMgr,
		logger:        logger,
	}
}

// Execute removes the organization with its users, tickets and invoices in
// one step.
func (uc *DeleteOrganizationUseCase) Execute(ctx context.Context, cmd DeleteOrganizationCommand) (*DeleteOrganizationResult, error) {
	uc.logger.Infow("executing delete organization use case", "organization_id", cmd.OrganizationID)

	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	if _, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceOrganization, access.ActionManage); err != nil {
		return nil, err
	}

	result := &DeleteOrganizationResult{OrganizationID: cmd.OrganizationID}
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.organizations.Delete(txCtx, cmd.OrganizationID); err != nil {
			return common.ToAppError(err)
		}

		removedUsers, err := uc.users.DeleteByOrganization(txCtx, cmd.OrganizationID)
		if err != nil {
			return common.ToAppError(err)
		}
		result.UsersDeleted = len(removedUsers)

		if result.TicketsDeleted, err = uc.tickets.DeleteByOrganization(txCtx, cmd.OrganizationID); err != nil {
			return common.ToAppError(err)
		}
		if result.InvoicesDeleted, err = uc.invoices.DeleteByOrganization(txCtx, cmd.OrganizationID); err != nil {
			return common.ToAppError(err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("delete organization failed", "organization_id", cmd.OrganizationID, "error", err)
		return nil, err
	}

	uc.logger.Infow("organization deleted successfully",
		"organization_id", cmd.OrganizationID,
		"users_deleted", result.UsersDeleted,
		"tickets_deleted", result.TicketsDeleted,
		"invoices_deleted", result.InvoicesDeleted,
	)
	return result, nil
}
