package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkartha/smileybox/internal/domain/access"
	uservo "github.com/thinkartha/smileybox/internal/domain/user/valueobjects"
	"github.com/thinkartha/smileybox/internal/shared/logger"
)

func TestEnforcer_PermissionTable(t *testing.T) {
	e, err := NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)

	type check struct {
		resource access.Resource
		action   access.Action
	}
	all := []check{
		{access.ResourceTicket, access.ActionCreate},
		{access.ResourceTicket, access.ActionUpdate},
		{access.ResourceMessage, access.ActionAdd},
		{access.ResourceInternalNote, access.ActionAdd},
		{access.ResourceTimeEntry, access.ActionAdd},
		{access.ResourceConversion, access.ActionRequest},
		{access.ResourceApprovalInternal, access.ActionDecide},
		{access.ResourceApprovalClient, access.ActionDecide},
		{access.ResourceInvoice, access.ActionCreate},
		{access.ResourceInvoice, access.ActionUpdate},
		{access.ResourceOrganization, access.ActionManage},
		{access.ResourceUser, access.ActionManage},
		{access.ResourceSettings, access.ActionUpdate},
	}

	staff := all[:6]
	lead := all[:7]
	admin := append(append([]check{}, lead...), all[8:]...)
	allowed := map[uservo.Role][]check{
		uservo.RoleAdmin:        admin,
		uservo.RoleSupportLead:  lead,
		uservo.RoleSupportStaff: staff,
		uservo.RoleClient: {
			{access.ResourceTicket, access.ActionCreate},
			{access.ResourceMessage, access.ActionAdd},
			{access.ResourceApprovalClient, access.ActionDecide},
		},
	}

	for _, role := range uservo.AllRoles() {
		for _, c := range all {
			want := false
			for _, a := range allowed[role] {
				if a == c {
					want = true
				}
			}
			name := role.String() + " " + string(c.action) + " " + string(c.resource)
			t.Run(name, func(t *testing.T) {
				got, err := e.Can(context.Background(), role, c.resource, c.action)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestEnforcer_UnknownRoleDenied(t *testing.T) {
	e, err := NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)

	got, err := e.Can(context.Background(), uservo.Role("guest"), access.ResourceTicket, access.ActionCreate)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEnforcer_PermissionsForRole(t *testing.T) {
	e, err := NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)

	perms, err := e.PermissionsForRole(uservo.RoleSupportLead)
	require.NoError(t, err)
	assert.Contains(t, perms, []string{"support-lead", "approval:internal", "decide"})
	assert.Contains(t, perms, []string{"support-staff", "ticket", "update"})
}
