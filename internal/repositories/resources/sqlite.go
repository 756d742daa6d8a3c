package resources

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

func (r *SQLiteRepository) Upsert(ctx context.Context, resource *models.Resource) error {
	query :=
		`INSERT INTO resources (resource_id, name, type, resource_group, subscription_id,
		                        region, status, tags, properties, last_updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (resource_id) DO UPDATE SET
		     name = excluded.name,
		     type = excluded.type,
		     resource_group = excluded.resource_group,
		     subscription_id = excluded.subscription_id,
		     region = excluded.region,
		     status = excluded.status,
		     tags = excluded.tags,
		     properties = excluded.properties,
		     last_updated = excluded.last_updated
		 `

	_, err := r.db.ExecContext(ctx, query,
		resource.ResourceID, resource.Name, resource.Type, resource.ResourceGroup,
		resource.SubscriptionID, resource.Region, resource.Status,
		nullableJSON(resource.Tags), nullableJSON(resource.Properties),
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, filter Filter) ([]*models.Resource, error) {
	query :=
		`SELECT id, resource_id, name, type, resource_group, subscription_id,
		        region, status, tags, properties, last_updated
		 FROM resources`

	var args []any
	appendCond := func(col, val string) {
		if val == "" {
			return
		}
		if len(args) == 0 {
			query += ` WHERE`
		} else {
			query += ` AND`
		}
		query += ` ` + col + ` = ?`
		args = append(args, val)
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

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
