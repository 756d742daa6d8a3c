package incidents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
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

func (r *SQLiteRepository) Create(ctx context.Context, incident *models.Incident) error {
	now := time.Now().UTC()
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = now
	}
	incident.UpdatedAt = now

	query :=
		`INSERT INTO incidents (incident_id, title, description, status, priority,
		                        assignee, service, region, category, impact,
		                        created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 `

	res, err := r.db.ExecContext(ctx, query,
		incident.IncidentID, incident.Title, incident.Description,
		incident.Status, incident.Priority, incident.Assignee,
		incident.Service, incident.Region, incident.Category, incident.Impact,
		incident.CreatedAt, incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	incident.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, incidentID string) (*models.Incident, error) {
	query := selectColumns + ` WHERE incident_id = ?`

	incident := &models.Incident{}
	err := scanIncident(r.db.QueryRowContext(ctx, query, incidentID), incident)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return incident, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, incident *models.Incident) error {
	query :=
		`UPDATE incidents
		 SET title = ?, description = ?, status = ?, priority = ?,
		     assignee = ?, service = ?, region = ?, category = ?,
		     impact = ?, updated_at = ?
		 WHERE incident_id = ?
		 `

	res, err := r.db.ExecContext(ctx, query,
		incident.Title, incident.Description, incident.Status, incident.Priority,
		incident.Assignee, incident.Service, incident.Region, incident.Category,
		incident.Impact, time.Now().UTC(), incident.IncidentID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, filter Filter) ([]*models.Incident, error) {
	query := selectColumns
	var args []any

	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	if filter.Assignee != "" {
		if len(args) == 0 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` assignee = ?`
		args = append(args, filter.Assignee)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ` + strconv.Itoa(filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectIncidents(rows)
}

func (r *SQLiteRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM incidents GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectCounts(rows)
}
