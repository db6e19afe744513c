package portal

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/thinkartha/smileybox/internal/application/common"
	"github.com/thinkartha/smileybox/internal/application/user/dto"
	"github.com/thinkartha/smileybox/internal/domain/user"
	vo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	"github.com/thinkartha/smileybox/internal/shared/errors"
	"github.com/thinkartha/smileybox/internal/shared/utils"
)

// session holds the id of the already-authenticated user. An empty id
// means nobody is signed in.
type session struct {
	mu     sync.RWMutex
	userID string
}

func (s *session) get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *session) set(userID string) {
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
}

// Login makes userID the current user. Credentials are checked before the
// store is reached; Login only requires the user to exist.
func (s *Store) Login(ctx context.Context, userID string) (*dto.UserDTO, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warnw("login rejected", "user_id", userID, "error", err)
		return nil, common.ToAppError(err)
	}
	return s.signIn(u), nil
}

// LoginByEmail resolves the user by address, then signs them in.
func (s *Store) LoginByEmail(ctx context.Context, email string) (*dto.UserDTO, error) {
	normalized, err := vo.NormalizeEmail(email)
	if err != nil {
		return nil, errors.NewValidationError("invalid email", err.Error())
	}
	u, err := s.users.GetByEmail(ctx, normalized)
	if err != nil {
		s.logger.Warnw("login rejected", "email", utils.MaskEmail(normalized), "error", err)
		return nil, common.ToAppError(err)
	}
	return s.signIn(u), nil
}

func (s *Store) signIn(u *user.User) *dto.UserDTO {
	s.session.set(u.ID())
	s.logger.Infow("user signed in", "user_id", u.ID(), "role", u.Role())
	return dto.ToUserDTO(u)
}

func (s *Store) Logout() {
	if previous := s.session.get(); previous != "" {
		s.logger.Infow("user signed out", "user_id", previous)
	}
	s.session.set("")
}

// CurrentUser returns the signed-in user, or an unauthorized error.
func (s *Store) CurrentUser(ctx context.Context) (*dto.UserDTO, error) {
	return s.getUserUC.GetByID(ctx, s.actorID(), s.actorID())
}

// Permission is one resource/action pair a role holds.
type Permission struct {
	Resource string
	Action   string
}

// Permissions lists what the signed-in user's role may do, inherited grants
// included, sorted by resource then action.
func (s *Store) Permissions(ctx context.Context) ([]Permission, error) {
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	role, err := vo.NewRole(current.Role)
	if err != nil {
		return nil, errors.NewInternalError("stored user has an unknown role", err.Error())
	}

	rows, err := s.enforcer.PermissionsForRole(role)
	if err != nil {
		return nil, errors.NewInternalError("failed to list permissions", err.Error())
	}

	seen := make(map[Permission]bool, len(rows))
	permissions := make([]Permission, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		p := Permission{Resource: row[1], Action: row[2]}
		if seen[p] {
			continue
		}
		seen[p] = true
		permissions = append(permissions, p)
	}
	slices.SortFunc(permissions, func(a, b Permission) int {
		if c := cmp.Compare(a.Resource, b.Resource); c != 0 {
			return c
		}
		return cmp.Compare(a.Action, b.Action)
	})
	return permissions, nil
}

func (s *Store) actorID() string {
	return s.session.get()
}
