package incidents

import (
	"database/sql"
	"fmt"

	"github.com/webdevreplits/azure-01/internal/models"
)

const selectColumns = `SELECT id, incident_id, title, description, status, priority,
       assignee, service, region, category, impact, created_at, updated_at
FROM incidents`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncident(row rowScanner, incident *models.Incident) error {
	var description, assignee, service, region, category, impact sql.NullString

	err := row.Scan(&incident.ID, &incident.IncidentID, &incident.Title,
		&description, &incident.Status, &incident.Priority,
		&assignee, &service, &region, &category, &impact,
		&incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return err
	}

	incident.Description = description.String
	incident.Assignee = assignee.String
	incident.Service = service.String
	incident.Region = region.String
	incident.Category = category.String
	incident.Impact = impact.String
	return nil
}

func collectIncidents(rows *sql.Rows) ([]*models.Incident, error) {
	var result []*models.Incident
	for rows.Next() {
		incident := &models.Incident{}
		if err := scanIncident(rows, incident); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, incident)
	}
	return result, rows.Err()
}

func collectCounts(rows *sql.Rows) (map[string]int64, error) {
	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
