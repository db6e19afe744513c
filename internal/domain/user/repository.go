package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// List returns users in creation order.
	List(ctx context.Context, filter ListFilter) ([]*User, error)
	// DeleteByOrganization removes every user of the organization and
	// returns the removed ids.
	DeleteByOrganization(ctx context.Context, organizationID string) ([]string, error)
}

type ListFilter struct {
	// OrganizationID keeps users of that organization.
	OrganizationID string
	// IncludeInternal also keeps internal staff when OrganizationID is set.
	IncludeInternal bool
}

// PasswordHasher hashes the optional password given when a user is created.
type PasswordHasher interface {
	Hash(password string) (string, error)
	IsHash(s string) bool
}
