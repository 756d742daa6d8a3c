package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/webdevreplits/azure-01/internal/dbx"
	"github.com/webdevreplits/azure-01/internal/models"
)

const defaultLimit = 100

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, entry *models.AuditEntry) error {
	query :=
		`INSERT INTO audit_log (user_id, action, resource_type, resource_id, details)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, timestamp
		 `

	var details any
	if entry.Details != "" {
		details = entry.Details
	}

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Action, entry.ResourceType, entry.ResourceID, details).
		Scan(&entry.ID, &entry.Timestamp)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, resource_type, resource_id, details, timestamp
		 FROM audit_log
		 ORDER BY timestamp DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, resource_type, resource_id, details, timestamp
		 FROM audit_log
		 ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]*models.AuditEntry, error) {
	var result []*models.AuditEntry
	for rows.Next() {
		entry := &models.AuditEntry{}
		var userID, resourceType, resourceID, details sql.NullString

		err := rows.Scan(&entry.ID, &userID, &entry.Action,
			&resourceType, &resourceID, &details, &entry.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		entry.UserID = userID.String
		entry.ResourceType = resourceType.String
		entry.ResourceID = resourceID.String
		entry.Details = details.String
		result = append(result, entry)
	}
	return result, rows.Err()
}
