package resources_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/models"
	"github.com/webdevreplits/azure-01/internal/repositories/resources"
	"github.com/webdevreplits/azure-01/internal/storage"
)

func newRepo(t *testing.T) resources.Repository {
	t.Helper()
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	b, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "resources.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	require.NoError(t, b.EnsureSchema(ctx))

	return b.Resources()
}

func sampleResource(id, name string) *models.Resource {
	return &models.Resource{
		ResourceID:     id,
		Name:           name,
		Type:           "Virtual Machines",
		ResourceGroup:  "rg-production",
		SubscriptionID: "Production Subscription",
		Region:         "East US",
		Status:         "Running",
		Tags:           `{"environment":"prod"}`,
	}
}

func TestUpsert_InsertThenReplace(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleResource("res-1", "web-vm")))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Same resource_id replaces the cached row instead of adding one.
	updated := sampleResource("res-1", "web-vm")
	updated.Status = "Stopped"
	updated.Region = "West US 2"
	require.NoError(t, repo.Upsert(ctx, updated))

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := repo.List(ctx, resources.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Stopped", list[0].Status)
	assert.Equal(t, "West US 2", list[0].Region)
	assert.False(t, list[0].LastUpdated.IsZero())
}

func TestList_Filters(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	a := sampleResource("res-a", "app-1")
	b := sampleResource("res-b", "db-1")
	b.Type = "SQL Databases"
	b.ResourceGroup = "rg-development"
	b.Status = "Stopped"
	c := sampleResource("res-c", "app-2")

	for _, r := range []*models.Resource{a, b, c} {
		require.NoError(t, repo.Upsert(ctx, r))
	}

	all, err := repo.List(ctx, resources.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Ordered by name.
	assert.Equal(t, "app-1", all[0].Name)
	assert.Equal(t, "db-1", all[2].Name)

	prod, err := repo.List(ctx, resources.Filter{ResourceGroup: "rg-production"})
	require.NoError(t, err)
	assert.Len(t, prod, 2)

	stopped, err := repo.List(ctx, resources.Filter{Type: "SQL Databases", Status: "Stopped"})
	require.NoError(t, err)
	require.Len(t, stopped, 1)
	assert.Equal(t, "res-b", stopped[0].ResourceID)

	none, err := repo.List(ctx, resources.Filter{Region: "UK South"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestResourcesInTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	b, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "tx.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	require.NoError(t, b.EnsureSchema(ctx))

	err = b.ResourcesInTx(ctx, func(repo resources.Repository) error {
		if err := repo.Upsert(ctx, sampleResource("res-1", "vm-1")); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	n, err := b.Resources().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "nothing from the failed transaction is visible")
}
