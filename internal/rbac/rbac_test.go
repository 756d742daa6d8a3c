package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsFor(t *testing.T) {
	tests := []struct {
		role string
		want []string
	}{
		{RoleAdmin, []string{"read", "write", "delete", "admin"}},
		{RoleEngineer, []string{"read", "write"}},
		{RoleViewer, []string{"read"}},
	}

	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			assert.Equal(t, tc.want, PermissionsFor(tc.role))
		})
	}
}

func TestPermissionsFor_UnknownRole(t *testing.T) {
	assert.Nil(t, PermissionsFor("Superuser"))
	assert.Nil(t, PermissionsFor(""))
}

func TestPermissionsFor_ReturnsCopy(t *testing.T) {
	p := PermissionsFor(RoleViewer)
	require.NotEmpty(t, p)
	p[0] = "mutated"
	assert.Equal(t, []string{"read"}, PermissionsFor(RoleViewer), "permission sets are closed")
}

func TestEveryRoleHasPermissions(t *testing.T) {
	for _, role := range Roles() {
		assert.NotEmpty(t, PermissionsFor(role), "role %s must map to a non-empty set", role)
		assert.NotEmpty(t, Describe(role))
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(RoleAdmin))
	assert.True(t, Valid(RoleEngineer))
	assert.True(t, Valid(RoleViewer))
	assert.False(t, Valid("admin"), "roles are case sensitive")
	assert.False(t, Valid("Guest"))
}

func TestHasPermission(t *testing.T) {
	perms := PermissionsFor(RoleEngineer)
	assert.True(t, HasPermission(perms, PermRead))
	assert.True(t, HasPermission(perms, PermWrite))
	assert.False(t, HasPermission(perms, PermDelete))
	assert.False(t, HasPermission(perms, PermAdmin))
	assert.False(t, HasPermission(nil, PermRead))
}
