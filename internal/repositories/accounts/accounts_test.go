package accounts_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/models"
	"github.com/webdevreplits/azure-01/internal/repositories/accounts"
	"github.com/webdevreplits/azure-01/internal/storage"
)

func newRepo(t *testing.T) accounts.Repository {
	t.Helper()
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	b, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "accounts.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	require.NoError(t, b.EnsureSchema(ctx))

	return b.Accounts()
}

func sampleAccount(username string) *models.Account {
	return &models.Account{
		Username:     username,
		PasswordHash: "hash-" + username,
		PasswordSalt: "salt-" + username,
		Email:        username + "@x.com",
		Role:         "Viewer",
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	account := sampleAccount("alice")
	require.NoError(t, repo.Create(ctx, account))
	assert.NotZero(t, account.ID)
	assert.False(t, account.CreatedAt.IsZero())

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "hash-alice", got.PasswordHash)
	assert.Equal(t, "salt-alice", got.PasswordSalt)
	assert.Equal(t, "alice@x.com", got.Email)
	assert.False(t, got.LastLogin.Valid)
}

func TestCreate_Duplicate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleAccount("alice")))
	err := repo.Create(ctx, sampleAccount("alice"))
	assert.ErrorIs(t, err, common.ErrDuplicateAccount)
}

func TestGet_NotFound(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateRole(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleAccount("alice")))
	require.NoError(t, repo.UpdateRole(ctx, "alice", "Admin"))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Admin", got.Role)

	assert.ErrorIs(t, repo.UpdateRole(ctx, "ghost", "Admin"), common.ErrNotFound)
}

func TestUpdatePassword(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleAccount("alice")))
	require.NoError(t, repo.UpdatePassword(ctx, "alice", "new-hash", "new-salt"))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.Equal(t, "new-salt", got.PasswordSalt)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, "ghost", "h", "s"), common.ErrNotFound)
}

func TestUpdateLastLogin(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleAccount("alice")))
	require.NoError(t, repo.UpdateLastLogin(ctx, "alice"))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.LastLogin.Valid)
}

func TestDelete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleAccount("alice")))
	require.NoError(t, repo.Delete(ctx, "alice"))

	_, err := repo.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "alice"), common.ErrNotFound)
}

func TestList(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleAccount("alice")))
	require.NoError(t, repo.Create(ctx, sampleAccount("bob")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	for _, a := range list {
		assert.Empty(t, a.PasswordHash)
		assert.Empty(t, a.PasswordSalt)
	}
	// Newest first; same-second inserts fall back to id order.
	assert.Equal(t, "bob", list[0].Username)
	assert.Equal(t, "alice", list[1].Username)
}
