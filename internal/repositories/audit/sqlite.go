package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/webdevreplits/azure-01/internal/dbx"
	"github.com/webdevreplits/azure-01/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, entry *models.AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	query :=
		`INSERT INTO audit_log (user_id, action, resource_type, resource_id, details, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)
		 `

	res, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.Action, entry.ResourceType, entry.ResourceID,
		entry.Details, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, resource_type, resource_id, details, timestamp
		 FROM audit_log
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]*models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, resource_type, resource_id, details, timestamp
		 FROM audit_log
		 ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}
