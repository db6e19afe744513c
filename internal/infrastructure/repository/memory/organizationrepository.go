package memory

import (
	"context"
	"fmt"

	"github.com/thinkartha/smileybox/internal/domain/organization"
)

var _ organization.Repository = (*OrganizationRepository)(nil)

type OrganizationRepository struct {
	tables *Tables
}

func NewOrganizationRepository(tables *Tables) *OrganizationRepository {
	return &OrganizationRepository{tables: tables}
}

func (r *OrganizationRepository) Create(ctx context.Context, o *organization.Organization) error {
	return r.tables.write(func(s *state) error {
		if _, exists := s.organizations.get(o.ID()); exists {
			return fmt.Errorf("organization %s already exists", o.ID())
		}
		s.organizations.put(o.ID(), o.Clone())
		return nil
	})
}

func (r *OrganizationRepository) Update(ctx context.Context, o *organization.Organization) error {
	return r.tables.write(func(s *state) error {
		if _, exists := s.organizations.get(o.ID()); !exists {
			return organization.ErrOrganizationNotFound
		}
		s.organizations.put(o.ID(), o.Clone())
		return nil
	})
}

func (r *OrganizationRepository) Delete(ctx context.Context, id string) error {
	return r.tables.write(func(s *state) error {
		if !s.organizations.remove(id) {
			return organization.ErrOrganizationNotFound
		}
		return nil
	})
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*organization.Organization, error) {
	var found *organization.Organization
	r.tables.read(func(s *state) {
		if o, ok := s.organizations.get(id); ok {
			found = o.Clone()
		}
	})
	if found == nil {
		return nil, organization.ErrOrganizationNotFound
	}
	return found, nil
}

func (r *OrganizationRepository) List(ctx context.Context) ([]*organization.Organization, error) {
	var out []*organization.Organization
	r.tables.read(func(s *state) {
		rows := s.organizations.values()
		out = make([]*organization.Organization, 0, len(rows))
		for _, o := range rows {
			out = append(out, o.Clone())
		}
	})
	return out, nil
}
