package usecases

import (
	"context"
	"time"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	domainUser "github.com/thinkartha/smileybox/internal/domain/user"
	"github.com/thinkartha/smileybox/internal/shared/biztime"
	"github.com/thinkartha/smileybox/internal/shared/db"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

type DeleteUserCommand struct {
	ActorID string `json:"-"`
	UserID  string `json:"user_id" validate:"required"`
}

type DeleteUserResult struct {
	UserID string
	// TicketsUnassigned lists the tickets that were assigned to the user.
	TicketsUnassigned []string
}

type DeleteUserUseCase struct {
	users   domainUser.Repository
	tickets ticket.Repository
	guard   *common.Guard
	txMgr   db.TransactionManager
	clock   biztime.Clock
	logger  logger.Interface
}

func NewDeleteUserUseCase(
	users domainUser.Repository,
	tickets ticket.Repository,
	guard *common.Guard,
	txMgr db.TransactionManager,
	clock biztime.Clock,
	logger logger.Interface,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		users:   users,
		tickets: tickets,
		guard:   guard,
		txMgr:   txMgr,
		clock:   clock,
		logger:  logger,
	}
}

// Execute removes the user and clears every assignment pointing at them.
// Messages and time entries they authored stay.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) (*DeleteUserResult, error) {
	uc.logger.Infow("executing delete user use case", "user_id", cmd.UserID)

	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	actor, err := uc.guard.Require(ctx, cmd.ActorID, access.ResourceUser, access.ActionManage)
	if err != nil {
		return nil, err
	}
	if actor.ID() == cmd.UserID {
		return nil, errors.NewValidationError(domainUser.ErrCannotDeleteCurrentUser.Error())
	}

	result := &DeleteUserResult{UserID: cmd.UserID, TicketsUnassigned: []string{}}
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.users.Delete(txCtx, cmd.UserID); err != nil {
			return common.ToAppError(err)
		}

		unassigned, err := unassignUser(txCtx, uc.tickets, cmd.UserID, uc.clock())
		if err != nil {
			return err
		}
		result.TicketsUnassigned = unassigned
		return nil
	})
	if err != nil {
		uc.logger.Errorw("delete user failed", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("user deleted successfully", "user_id", cmd.UserID, "tickets_unassigned", len(result.TicketsUnassigned))
	return result, nil
}

// unassignUser clears every ticket assignment pointing at userID and returns
// the affected ticket ids.
func unassignUser(ctx context.Context, tickets ticket.Repository, userID string, now time.Time) ([]string, error) {
	assigned, err := tickets.List(ctx, ticket.Filter{AssignedTo: &userID})
	if err != nil {
		return nil, common.ToAppError(err)
	}
	unassigned := []string{}
	for _, t := range assigned {
		if !t.Unassign(userID, now) {
			continue
		}
		if err := tickets.Update(ctx, t); err != nil {
			return nil, common.ToAppError(err)
		}
		unassigned = append(unassigned, t.ID())
	}
	return unassigned, nil
}
