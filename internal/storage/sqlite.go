package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/webdevreplits/azure-01/internal/dbx"
	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/repositories/accounts"
	"github.com/webdevreplits/azure-01/internal/repositories/audit"
	"github.com/webdevreplits/azure-01/internal/repositories/incidents"
	"github.com/webdevreplits/azure-01/internal/repositories/resources"
	"github.com/webdevreplits/azure-01/internal/repositories/settings"
	"github.com/webdevreplits/azure-01/internal/storage/migrations"
)

type SQLiteBackend struct {
	db  *sql.DB
	log logging.Logger

	accounts  accounts.Repository
	incidents incidents.Repository
	resources resources.Repository
	settings  settings.Repository
	audit     audit.Repository
}

// OpenSQLite opens (creating if needed) the embedded fallback database. The
// parent directory of path is created when absent. URI paths ("file:...")
// and ":memory:" are passed through untouched, which the tests rely on.
func OpenSQLite(ctx context.Context, path string, log logging.Logger) (*SQLiteBackend, error) {
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create storage location: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// The driver is in-process; a single writer avoids SQLITE_BUSY noise.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &SQLiteBackend{
		db:        db,
		log:       log,
		accounts:  accounts.NewSQLiteRepository(db),
		incidents: incidents.NewSQLiteRepository(db),
		resources: resources.NewSQLiteRepository(db),
		settings:  settings.NewSQLiteRepository(db),
		audit:     audit.NewSQLiteRepository(db),
	}, nil
}

func (b *SQLiteBackend) Engine() Engine { return EngineSQLite }
func (b *SQLiteBackend) Conn() *sql.DB  { return b.db }
func (b *SQLiteBackend) Close() error   { return b.db.Close() }

func (b *SQLiteBackend) Accounts() accounts.Repository   { return b.accounts }
func (b *SQLiteBackend) Incidents() incidents.Repository { return b.incidents }
func (b *SQLiteBackend) Resources() resources.Repository { return b.resources }
func (b *SQLiteBackend) Settings() settings.Repository   { return b.settings }
func (b *SQLiteBackend) Audit() audit.Repository         { return b.audit }

func (b *SQLiteBackend) ResourcesInTx(ctx context.Context, fn func(resources.Repository) error) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(resources.NewSQLiteRepository(tx))
	})
}

func (b *SQLiteBackend) EnsureSchema(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, b.db, "sqlite"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return b.ensureAccountColumns(ctx)
}

// ensureAccountColumns mirrors the postgres upgrade: sqlite has no
// ADD COLUMN IF NOT EXISTS, so presence is checked via PRAGMA table_info
// and duplicate-column races are swallowed.
func (b *SQLiteBackend) ensureAccountColumns(ctx context.Context) error {
	rows, err := b.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('accounts')`)
	if err != nil {
		return fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	existing := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan column: %w", err)
		}
		existing[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range credentialColumns {
		if existing[col] {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE accounts ADD COLUMN %s TEXT`, col)
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				b.log.Debug(ctx, "column already present, skipping", "column", col)
				continue
			}
			return fmt.Errorf("failed to add column %s: %w", col, err)
		}
		b.log.Info(ctx, "added missing accounts column", "column", col)
	}

	return nil
}
