package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/dbx"
	"github.com/webdevreplits/azure-01/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	query :=
		`SELECT id, key, value, description, updated_at FROM settings
		 WHERE key = $1
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

func (r *PostgresRepository) Set(ctx context.Context, key, value, description string) error {
	query :=
		`INSERT INTO settings (key, value, description)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET
		     value = EXCLUDED.value,
		     description = EXCLUDED.description,
		     updated_at = CURRENT_TIMESTAMP
		 `

	if _, err := r.db.ExecContext(ctx, query, key, value, description); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Setting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, key, value, description, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectSettings(rows)
}

func collectSettings(rows *sql.Rows) ([]*models.Setting, error) {
	var result []*models.Setting
	for rows.Next() {
		setting := &models.Setting{}
		var value, description sql.NullString
		if err := rows.Scan(&setting.ID, &setting.Key, &value, &description,
			&setting.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		setting.Value = value.String
		setting.Description = description.String
		result = append(result, setting)
	}
	return result, rows.Err()
}
