package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/rbac"
)

func TestNewSessionIdentity(t *testing.T) {
	id, err := NewSessionIdentity("alice", "a@x.com", rbac.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "write", "delete", "admin"}, id.Permissions)
	assert.True(t, id.IsAdmin())

	viewer, err := NewSessionIdentity("bob", "", rbac.RoleViewer)
	require.NoError(t, err)
	assert.True(t, viewer.HasPermission("read"))
	assert.False(t, viewer.HasPermission("write"))
	assert.False(t, viewer.IsAdmin())
}

func TestNewSessionIdentity_InvalidRole(t *testing.T) {
	_, err := NewSessionIdentity("alice", "", "Superuser")
	assert.ErrorIs(t, err, common.ErrInvalidRole)
}

func TestHasPermission_NilIdentity(t *testing.T) {
	var id *SessionIdentity
	assert.False(t, id.HasPermission("read"))
}
