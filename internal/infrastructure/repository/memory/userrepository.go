package memory

import (
	"context"
	"fmt"

	"github.com/thinkartha/smileybox/internal/domain/user"
)

var _ user.Repository = (*UserRepository)(nil)

type UserRepository struct {
	tables *Tables
}

func NewUserRepository(tables *Tables) *UserRepository {
	return &UserRepository{tables: tables}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.tables.write(func(s *state) error {
		if _, exists := s.users.get(u.ID()); exists {
			return fmt.Errorf("user %s already exists", u.ID())
		}
		if emailTaken(s, u.Email(), "") {
			return user.ErrEmailExists
		}
		s.users.put(u.ID(), u.Clone())
		return nil
	})
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	return r.tables.write(func(s *state) error {
		if _, exists := s.users.get(u.ID()); !exists {
			return user.ErrUserNotFound
		}
		if emailTaken(s, u.Email(), u.ID()) {
			return user.ErrEmailExists
		}
		s.users.put(u.ID(), u.Clone())
		return nil
	})
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.tables.write(func(s *state) error {
		if !s.users.remove(id) {
			return user.ErrUserNotFound
		}
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var found *user.User
	r.tables.read(func(s *state) {
		if u, ok := s.users.get(id); ok {
			found = u.Clone()
		}
	})
	if found == nil {
		return nil, user.ErrUserNotFound
	}
	return found, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var found *user.User
	r.tables.read(func(s *state) {
		for _, u := range s.users.values() {
			if u.Email() == email {
				found = u.Clone()
				return
			}
		}
	})
	if found == nil {
		return nil, user.ErrUserNotFound
	}
	return found, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, error) {
	var out []*user.User
	r.tables.read(func(s *state) {
		for _, u := range s.users.values() {
			if filter.OrganizationID != "" && !u.BelongsTo(filter.OrganizationID) {
				if !(filter.IncludeInternal && u.IsInternal()) {
					continue
				}
			}
			out = append(out, u.Clone())
		}
	})
	if out == nil {
		out = []*user.User{}
	}
	return out, nil
}

func (r *UserRepository) DeleteByOrganization(ctx context.Context, organizationID string) ([]string, error) {
	var removed []string
	err := r.tables.write(func(s *state) error {
		for _, u := range s.users.values() {
			if u.BelongsTo(organizationID) {
				s.users.remove(u.ID())
				removed = append(removed, u.ID())
			}
		}
		return nil
	})
	return removed, err
}

func emailTaken(s *state, email, exceptID string) bool {
	for _, u := range s.users.values() {
		if u.Email() == email && u.ID() != exceptID {
			return true
		}
	}
	return false
}
