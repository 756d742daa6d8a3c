package settings_test

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
	"github.com/webdevreplits/azure-01/internal/repositories/settings"
	"github.com/webdevreplits/azure-01/internal/storage"
)

func newRepo(t *testing.T) settings.Repository {
	t.Helper()
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	b, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "settings.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	require.NoError(t, b.EnsureSchema(ctx))

	return b.Settings()
}

func TestGet_NotFound(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSetAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "refresh_interval", "30", "dashboard refresh seconds"))

	got, err := repo.Get(ctx, "refresh_interval")
	require.NoError(t, err)
	assert.Equal(t, "30", got.Value)
	assert.Equal(t, "dashboard refresh seconds", got.Description)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSet_Overwrites(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "theme", `"light"`, ""))
	require.NoError(t, repo.Set(ctx, "theme", `"dark"`, "ui theme"))

	got, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, got.Value)
	assert.Equal(t, "ui theme", got.Description)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "overwriting the same key keeps one row")
}

func TestList_OrderedByKey(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "zeta", "1", ""))
	require.NoError(t, repo.Set(ctx, "alpha", "2", ""))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alpha", list[0].Key)
	assert.Equal(t, "zeta", list[1].Key)
}
