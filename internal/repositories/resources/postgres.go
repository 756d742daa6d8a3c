package resources

import (
	"context"
	"fmt"
	"strconv"

	"github.com/webdevreplits/azure-01/internal/dbx"
	"github.com/webdevreplits/azure-01/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, resource *models.Resource) error {
	query :=
		`INSERT INTO resources (resource_id, name, type, resource_group, subscription_id,
		                        region, status, tags, properties, last_updated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		 ON CONFLICT (resource_id) DO UPDATE SET
		     name = EXCLUDED.name,
		     type = EXCLUDED.type,
		     resource_group = EXCLUDED.resource_group,
		     subscription_id = EXCLUDED.subscription_id,
		     region = EXCLUDED.region,
		     status = EXCLUDED.status,
		     tags = EXCLUDED.tags,
		     properties = EXCLUDED.properties,
		     last_updated = CURRENT_TIMESTAMP
		 `

	_, err := r.db.ExecContext(ctx, query,
		resource.ResourceID, resource.Name, resource.Type, resource.ResourceGroup,
		resource.SubscriptionID, resource.Region, resource.Status,
		nullableJSON(resource.Tags), nullableJSON(resource.Properties))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]*models.Resource, error) {
	query :=
		`SELECT id, resource_id, name, type, resource_group, subscription_id,
		        region, status, tags, properties, last_updated
		 FROM resources`

	var args []any
	appendCond := func(col, val string) {
		if val == "" {
			return
		}
		args = append(args, val)
		if len(args) == 1 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` ` + col + ` = $` + strconv.Itoa(len(args))
	}

	appendCond("resource_group", filter.ResourceGroup)
	appendCond("type", filter.Type)
	appendCond("region", filter.Region)
	appendCond("status", filter.Status)

	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectResources(rows)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
