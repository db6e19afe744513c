package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	tests := []struct {
		role     Role
		internal bool
	}{
		{RoleAdmin, true},
		{RoleSupportLead, true},
		{RoleSupportStaff, true},
		{RoleClient, false},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.True(t, tt.role.IsValid())
			assert.Equal(t, tt.internal, tt.role.IsInternal())
			assert.Equal(t, !tt.internal, tt.role.IsClient())
		})
	}

	_, err := NewRole("support_staff")
	assert.Error(t, err)
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Sarah.Chen@Acme.COM ")
	require.NoError(t, err)
	assert.Equal(t, "sarah.chen@acme.com", got)

	for _, bad := range []string{"", "no-at-sign", "a@b", "a b@c.io"} {
		_, err := NormalizeEmail(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizeName(t *testing.T) {
	got, err := NormalizeName("  Mia   van der  Berg ")
	require.NoError(t, err)
	assert.Equal(t, "Mia van der Berg", got)

	_, err = NormalizeName("   ")
	assert.Error(t, err)
}

func TestAvatar(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sarah Chen", "SC"},
		{"mia van der berg", "MV"},
		{"cher", "C"},
		{"émile zola", "ÉZ"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Avatar(tt.name))
		})
	}
}
