package storage

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/webdevreplits/azure-01/internal/config"
	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/models"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func tableNames(t *testing.T, db *sql.DB) map[string]bool {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	require.NoError(t, err)
	defer rows.Close()

	names := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names[name] = true
	}
	require.NoError(t, rows.Err())
	return names
}

func columnNames(t *testing.T, db *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := db.Query(`SELECT name FROM pragma_table_info('` + table + `')`)
	require.NoError(t, err)
	defer rows.Close()

	names := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names[name] = true
	}
	require.NoError(t, rows.Err())
	return names
}

func TestEnsureSchema_CreatesAllTables(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dash.db")

	b, err := OpenSQLite(ctx, path, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, b.EnsureSchema(ctx))

	tables := tableNames(t, b.Conn())
	for _, want := range []string{"accounts", "incidents", "resources", "settings", "audit_log"} {
		require.True(t, tables[want], "missing table %s", want)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dash.db")

	b, err := OpenSQLite(ctx, path, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, b.EnsureSchema(ctx))

	// Populate, then re-run the schema pass several times.
	require.NoError(t, b.Accounts().Create(ctx, &models.Account{
		Username: "alice", Role: "Viewer",
	}))

	before := columnNames(t, b.Conn(), "accounts")
	for i := 0; i < 3; i++ {
		require.NoError(t, b.EnsureSchema(ctx))
	}
	require.Equal(t, before, columnNames(t, b.Conn(), "accounts"))

	got, err := b.Accounts().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username, "existing data must survive schema passes")
}

func TestEnsureSchema_UpgradesLegacyAccountsTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "legacy.db")

	// A database from before credential storage: accounts exists but has
	// no password columns.
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT,
		role TEXT DEFAULT 'Viewer',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_login TIMESTAMP
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO accounts (username, email, role) VALUES ('bob', 'bob@x.com', 'Engineer')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	b, err := OpenSQLite(ctx, path, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, b.EnsureSchema(ctx))

	cols := columnNames(t, b.Conn(), "accounts")
	require.True(t, cols["password_hash"])
	require.True(t, cols["password_salt"])

	// Existing rows survive the upgrade.
	got, err := b.Accounts().GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "Engineer", got.Role)
	require.Empty(t, got.PasswordHash)
}

func TestOpen_FallsBackToSQLite(t *testing.T) {
	ctx := context.Background()

	cfg := config.DatabaseConfig{
		// Port 1 on loopback refuses connections immediately.
		Host:           "127.0.0.1",
		Port:           1,
		Name:           "azure_support",
		User:           "postgres",
		ConnectTimeout: 2 * time.Second,
		SQLitePath:     filepath.Join(t.TempDir(), "fallback.db"),
	}

	b, err := Open(ctx, cfg, testLogger())
	require.NoError(t, err, "fallback engine must be selected without error")
	t.Cleanup(func() { _ = b.Close() })

	require.Equal(t, EngineSQLite, b.Engine())
	require.NoError(t, b.Conn().PingContext(ctx))
}

func TestOpen_BothEnginesFail(t *testing.T) {
	ctx := context.Background()

	cfg := config.DatabaseConfig{
		Host:           "127.0.0.1",
		Port:           1,
		Name:           "azure_support",
		ConnectTimeout: 2 * time.Second,
		// An unwritable location: the path is a directory.
		SQLitePath: t.TempDir(),
	}

	_, err := Open(ctx, cfg, testLogger())
	require.Error(t, err)
}

func TestCandidateDSNs(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host: "dbhost", Port: 5432, Name: "azure_support",
		User: "postgres", Password: "pw", ConnectTimeout: 5 * time.Second,
	}

	dsns := candidateDSNs(cfg)
	require.Len(t, dsns, 1)
	require.Contains(t, dsns[0], "postgres://postgres:pw@dbhost:5432/azure_support")
	require.Contains(t, dsns[0], "connect_timeout=5")

	cfg.URL = "postgres://u@elsewhere:5432/db"
	dsns = candidateDSNs(cfg)
	require.Len(t, dsns, 2)
	require.Equal(t, cfg.URL, dsns[0], "explicit connection string is tried first")
}
