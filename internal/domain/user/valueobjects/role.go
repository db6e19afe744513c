package valueobjects

import "fmt"

// Role is the closed set of portal roles. Internal roles belong to the
// support provider; client users belong to exactly one organization.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSupportLead  Role = "support-lead"
	RoleSupportStaff Role = "support-staff"
	RoleClient       Role = "client"
)

var validRoles = map[Role]bool{
	RoleAdmin:        true,
	RoleSupportLead:  true,
	RoleSupportStaff: true,
	RoleClient:       true,
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) IsInternal() bool {
	return r == RoleAdmin || r == RoleSupportLead || r == RoleSupportStaff
}

func (r Role) IsClient() bool {
	return r == RoleClient
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}

// AllRoles lists roles in display order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleSupportLead, RoleSupportStaff, RoleClient}
}
