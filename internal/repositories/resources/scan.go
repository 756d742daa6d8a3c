package resources

import (
	"database/sql"
	"fmt"

	"github.com/webdevreplits/azure-01/internal/models"
)

// nullableJSON maps an empty JSON payload to NULL so the postgres JSONB
// columns do not reject empty strings.
func nullableJSON(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func collectResources(rows *sql.Rows) ([]*models.Resource, error) {
	var result []*models.Resource
	for rows.Next() {
		resource := &models.Resource{}
		var typ, group, sub, region, status, tags, properties sql.NullString

		err := rows.Scan(&resource.ID, &resource.ResourceID, &resource.Name,
			&typ, &group, &sub, &region, &status, &tags, &properties,
			&resource.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		resource.Type = typ.String
		resource.ResourceGroup = group.String
		resource.SubscriptionID = sub.String
		resource.Region = region.String
		resource.Status = status.String
		resource.Tags = tags.String
		resource.Properties = properties.String
		result = append(result, resource)
	}
	return result, rows.Err()
}
