package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The CLI must administer the same store the server reads, so the
// environment layers (DATABASE_URL, PG*, SQLITE_PATH) have to be honored,
// not just compiled-in defaults.
func TestRun_HonorsEnvironmentStorageConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ops", "azctl.db")

	// Primary engine unreachable on both candidate DSNs, fallback pinned
	// to an explicit location far from the default relative path.
	t.Setenv("DATABASE_URL", "postgres://u:p@127.0.0.1:1/azure_support")
	t.Setenv("PGHOST", "127.0.0.1")
	t.Setenv("PGPORT", "1")
	t.Setenv("SQLITE_PATH", dbPath)

	require.NoError(t, run("list-accounts", nil))

	_, err := os.Stat(dbPath)
	assert.NoError(t, err, "fallback database is created at the configured path")

	// The compiled-in default location must stay untouched.
	_, err = os.Stat("data/azure_support.db")
	assert.True(t, os.IsNotExist(err))
}

func TestRun_UnknownCommand(t *testing.T) {
	require.Error(t, run("frobnicate", nil))
}
