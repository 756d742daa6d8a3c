package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/webdevreplits/azure-01/internal/dbx"
	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/repositories/accounts"
	"github.com/webdevreplits/azure-01/internal/repositories/audit"
	"github.com/webdevreplits/azure-01/internal/repositories/incidents"
	"github.com/webdevreplits/azure-01/internal/repositories/resources"
	"github.com/webdevreplits/azure-01/internal/repositories/settings"
	"github.com/webdevreplits/azure-01/internal/storage/migrations"
)

type PostgresBackend struct {
	db  *sql.DB
	log logging.Logger

	accounts  accounts.Repository
	incidents incidents.Repository
	resources resources.Repository
	settings  settings.Repository
	audit     audit.Repository
}

// OpenPostgres connects to the primary engine and verifies the connection
// with a ping bounded by ctx. On any failure the partially opened handle is
// closed before returning.
func OpenPostgres(ctx context.Context, dsn string, log logging.Logger) (*PostgresBackend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &PostgresBackend{
		db:        db,
		log:       log,
		accounts:  accounts.NewPostgresRepository(db),
		incidents: incidents.NewPostgresRepository(db),
		resources: resources.NewPostgresRepository(db),
		settings:  settings.NewPostgresRepository(db),
		audit:     audit.NewPostgresRepository(db),
	}, nil
}

func (b *PostgresBackend) Engine() Engine { return EnginePostgres }
func (b *PostgresBackend) Conn() *sql.DB  { return b.db }
func (b *PostgresBackend) Close() error   { return b.db.Close() }

func (b *PostgresBackend) Accounts() accounts.Repository   { return b.accounts }
func (b *PostgresBackend) Incidents() incidents.Repository { return b.incidents }
func (b *PostgresBackend) Resources() resources.Repository { return b.resources }
func (b *PostgresBackend) Settings() settings.Repository   { return b.settings }
func (b *PostgresBackend) Audit() audit.Repository         { return b.audit }

func (b *PostgresBackend) ResourcesInTx(ctx context.Context, fn func(resources.Repository) error) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(resources.NewPostgresRepository(tx))
	})
}

func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, b.db, "postgres"); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return b.ensureAccountColumns(ctx)
}

// ensureAccountColumns upgrades accounts tables created before credential
// storage was added: it introspects the live columns and issues an ALTER
// only for the missing ones. "Already exists" races are non-fatal.
func (b *PostgresBackend) ensureAccountColumns(ctx context.Context) error {
	rows, err := b.db.QueryContext(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = 'accounts'`)
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
		stmt := fmt.Sprintf(`ALTER TABLE accounts ADD COLUMN IF NOT EXISTS %s TEXT`, col)
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				b.log.Debug(ctx, "column already present, skipping", "column", col)
				continue
			}
			return fmt.Errorf("failed to add column %s: %w", col, err)
		}
		b.log.Info(ctx, "added missing accounts column", "column", col)
	}

	return nil
}

// credentialColumns are the accounts columns added after the first schema
// generation; older databases may lack them.
var credentialColumns = []string{"password_hash", "password_salt"}
