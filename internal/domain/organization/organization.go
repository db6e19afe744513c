package organization

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNameRequired         = errors.New("organization name is required")
	ErrInvalidPlan          = errors.New("invalid plan")
)

// Organization is a client company. Users and tickets reference it by id.
type Organization struct {
	id           string
	name         string
	plan         Plan
	contactEmail string
	createdAt    time.Time
}

func NewOrganization(id, name string, plan Plan, contactEmail string, now time.Time) (*Organization, error) {
	o := &Organization{id: id, createdAt: now.UTC()}
	if err := o.Update(&name, &plan, &contactEmail); err != nil {
		return nil, err
	}
	return o, nil
}

func ReconstructOrganization(id, name string, plan Plan, contactEmail string, createdAt time.Time) (*Organization, error) {
	if id == "" {
		return nil, ErrOrganizationNotFound
	}
	if !plan.IsValid() {
		return nil, ErrInvalidPlan
	}
	return &Organization{
		id:           id,
		name:         name,
		plan:         plan,
		contactEmail: contactEmail,
		createdAt:    createdAt,
	}, nil
}

func (o *Organization) ID() string { return o.id }
func (o *Organization) Name() string { return o.name }
func (o *Organization) Plan() Plan { return o.plan }
func (o *Organization) ContactEmail() string { return o.contactEmail }
func (o *Organization) CreatedAt() time.Time { return o.createdAt }

// Update applies the non-nil fields. Nothing changes when any is invalid.
// Email format is checked by the caller's command validation.
func (o *Organization) Update(name *string, plan *Plan, contactEmail *string) error {
	next := *o
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return ErrNameRequired
		}
		next.name = n
	}
	if plan != nil {
		if !plan.IsValid() {
			return ErrInvalidPlan
		}
		next.plan = *plan
	}
	if contactEmail != nil {
		next.contactEmail = strings.ToLower(strings.TrimSpace(*contactEmail))
	}
	*o = next
	return nil
}

func (o *Organization) Clone() *Organization {
	cp := *o
	return &cp
}

type Repository interface {
	Create(ctx context.Context, o *Organization) error
	Update(ctx context.Context, o *Organization) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Organization, error)
	// List returns organizations in creation order.
	List(ctx context.Context) ([]*Organization, error)
}
