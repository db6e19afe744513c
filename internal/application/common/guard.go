package common

import (
	"context"
	"errors"

	"github.com/thinkartha/smileybox/internal/domain/access"
	"github.com/thinkartha/smileybox/internal/domain/user"
	apperrors "github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

// Guard resolves the acting user of an operation and checks its role
// against the permission table.
type Guard struct {
	users      user.Repository
	authorizer access.Authorizer
	logger     logger.Interface
}

func NewGuard(users user.Repository, authorizer access.Authorizer, logger logger.Interface) *Guard {
	return &Guard{
		users:      users,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Actor loads the acting user. A missing or unknown id means nobody is
// signed in.
func (g *Guard) Actor(ctx context.Context, actorID string) (*user.User, error) {
	if actorID == "" {
		return nil, apperrors.NewUnauthorizedError("no user is signed in")
	}
	actor, err := g.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("signed-in user no longer exists", actorID)
		}
		return nil, ToAppError(err)
	}
	return actor, nil
}

// Authorize fails with a forbidden error when the actor's role lacks the
// permission.
func (g *Guard) Authorize(ctx context.Context, actor *user.User, resource access.Resource, action access.Action) error {
	allowed, err := g.authorizer.Can(ctx, actor.Role(), resource, action)
	if err != nil {
		return apperrors.NewInternalError("permission check failed", err.Error())
	}
	if !allowed {
		g.logger.Warnw("permission denied",
			"user_id", actor.ID(),
			"role", actor.Role(),
			"resource", resource,
			"action", action,
		)
		return apperrors.NewForbiddenError(
			"you do not have permission to perform this action",
			string(action)+" "+string(resource),
		)
	}
	return nil
}

// Require combines Actor and Authorize.
func (g *Guard) Require(ctx context.Context, actorID string, resource access.Resource, action access.Action) (*user.User, error) {
	actor, err := g.Actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := g.Authorize(ctx, actor, resource, action); err != nil {
		return nil, err
	}
	return actor, nil
}
