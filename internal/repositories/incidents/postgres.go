package incidents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

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

func (r *PostgresRepository) Create(ctx context.Context, incident *models.Incident) error {
	query :=
		`INSERT INTO incidents (incident_id, title, description, status, priority,
		                        assignee, service, region, category, impact)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		incident.IncidentID, incident.Title, incident.Description,
		incident.Status, incident.Priority, incident.Assignee,
		incident.Service, incident.Region, incident.Category, incident.Impact).
		Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, incidentID string) (*models.Incident, error) {
	query := selectColumns + ` WHERE incident_id = $1`

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

func (r *PostgresRepository) Update(ctx context.Context, incident *models.Incident) error {
	query :=
		`UPDATE incidents
		 SET title = $1, description = $2, status = $3, priority = $4,
		     assignee = $5, service = $6, region = $7, category = $8,
		     impact = $9, updated_at = CURRENT_TIMESTAMP
		 WHERE incident_id = $10
		 `

	res, err := r.db.ExecContext(ctx, query,
		incident.Title, incident.Description, incident.Status, incident.Priority,
		incident.Assignee, incident.Service, incident.Region, incident.Category,
		incident.Impact, incident.IncidentID)
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

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]*models.Incident, error) {
	query := selectColumns
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` WHERE status = $` + strconv.Itoa(len(args))
	}
	if filter.Assignee != "" {
		args = append(args, filter.Assignee)
		if len(args) == 1 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` assignee = $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectIncidents(rows)
}

func (r *PostgresRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM incidents GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectCounts(rows)
}
