package user

import (
	"fmt"
	"time"

	vo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
)

// User is a portal account. organizationID is set exactly when the role is
// client.
type User struct {
	id             string
	name           string
	email          string
	role           vo.Role
	organizationID *string
	avatar         string
	passwordHash   *string
	createdAt      time.Time
}

func NewUser(id, name, email string, role vo.Role, organizationID *string, now time.Time) (*User, error) {
	normalizedName, err := vo.NormalizeName(name)
	if err != nil {
		return nil, err
	}
	normalizedEmail, err := vo.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := checkRoleOrganization(role, organizationID); err != nil {
		return nil, err
	}

	return &User{
		id:             id,
		name:           normalizedName,
		email:          normalizedEmail,
		role:           role,
		organizationID: copyString(organizationID),
		avatar:         vo.Avatar(normalizedName),
		createdAt:      now.UTC(),
	}, nil
}

// ReconstructUser rebuilds a stored user. An empty avatar is derived from the name.
func ReconstructUser(id, name, email string, role vo.Role, organizationID *string, avatar string, passwordHash *string, createdAt time.Time) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if err := checkRoleOrganization(role, organizationID); err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	if avatar == "" {
		avatar = vo.Avatar(name)
	}
	return &User{
		id:             id,
		name:           name,
		email:          email,
		role:           role,
		organizationID: copyString(organizationID),
		avatar:         avatar,
		passwordHash:   copyString(passwordHash),
		createdAt:      createdAt,
	}, nil
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Role() vo.Role {
	return u.role
}

func (u *User) IsInternal() bool {
	return u.role.IsInternal()
}

func (u *User) IsClient() bool {
	return u.role.IsClient()
}

// OrganizationID returns the organization of a client user, or "" for staff.
func (u *User) OrganizationID() string {
	if u.organizationID == nil {
		return ""
	}
	return *u.organizationID
}

func (u *User) BelongsTo(organizationID string) bool {
	return u.organizationID != nil && *u.organizationID == organizationID
}

func (u *User) Avatar() string {
	return u.avatar
}

func (u *User) HasPassword() bool {
	return u.passwordHash != nil
}

func (u *User) PasswordHash() string {
	if u.passwordHash == nil {
		return ""
	}
	return *u.passwordHash
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// Rename changes the name and re-derives the avatar.
func (u *User) Rename(name string) error {
	normalized, err := vo.NormalizeName(name)
	if err != nil {
		return err
	}
	u.name = normalized
	u.avatar = vo.Avatar(normalized)
	return nil
}

func (u *User) ChangeEmail(email string) error {
	normalized, err := vo.NormalizeEmail(email)
	if err != nil {
		return err
	}
	u.email = normalized
	return nil
}

// ChangeRole sets role and organization together so they stay consistent:
// moving to client requires an organization, moving to staff clears it.
func (u *User) ChangeRole(role vo.Role, organizationID *string) error {
	if role.IsInternal() {
		organizationID = nil
	}
	if err := checkRoleOrganization(role, organizationID); err != nil {
		return err
	}
	u.role = role
	u.organizationID = copyString(organizationID)
	return nil
}

func (u *User) SetPasswordHash(hash string) {
	u.passwordHash = &hash
}

func (u *User) Clone() *User {
	cp := *u
	cp.organizationID = copyString(u.organizationID)
	cp.passwordHash = copyString(u.passwordHash)
	return &cp
}

func checkRoleOrganization(role vo.Role, organizationID *string) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}
	hasOrg := organizationID != nil && *organizationID != ""
	if role.IsClient() && !hasOrg {
		return ErrOrganizationRequired
	}
	if role.IsInternal() && hasOrg {
		return ErrOrganizationNotAllowed
	}
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
