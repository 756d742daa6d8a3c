package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/rbac"
)

var testSecret = []byte("unit-test-secret")

func testIdentity(t *testing.T) *SessionIdentity {
	t.Helper()
	id, err := NewSessionIdentity("alice", "alice@x.com", rbac.RoleEngineer)
	require.NoError(t, err)
	return id
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testIdentity(t), testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := IdentityFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, "alice@x.com", id.Email)
	assert.Equal(t, rbac.RoleEngineer, id.Role)
	assert.Equal(t, []string{"read", "write"}, id.Permissions)
}

func TestIdentityFromToken_Expired(t *testing.T) {
	token, err := GenerateToken(testIdentity(t), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = IdentityFromToken(token, testSecret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIdentityFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testIdentity(t), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = IdentityFromToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIdentityFromToken_Garbage(t *testing.T) {
	_, err := IdentityFromToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
