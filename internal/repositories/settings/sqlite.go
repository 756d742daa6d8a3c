package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/dbx"
	"github.com/webdevreplits/azure-01/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	query :=
		`SELECT id, key, value, description, updated_at FROM settings
		 WHERE key = ?
		 `

	setting := &models.Setting{}
	var value, description sql.NullString

	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&setting.ID, &setting.Key, &value, &description, &setting.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	setting.Value = value.String
	setting.Description = description.String
	return setting, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value, description string) error {
	query :=
		`INSERT INTO settings (key, value, description, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET
		     value = excluded.value,
		     description = excluded.description,
		     updated_at = excluded.updated_at
		 `

	if _, err := r.db.ExecContext(ctx, query, key, value, description, time.Now().UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Setting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, key, value, description, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectSettings(rows)
}
