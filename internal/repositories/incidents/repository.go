// Package incidents persists support incidents shown in the incident center.
package incidents

import (
	"context"

	"github.com/webdevreplits/azure-01/internal/models"
)

// Filter narrows List results. Zero values mean "no filter"; Limit <= 0
// returns everything.
type Filter struct {
	Status   string
	Assignee string
	Limit    int
}

// Repository is the storage contract for incidents. Get and Update return
// common.ErrNotFound when no row matches the incident id.
type Repository interface {
	Create(ctx context.Context, incident *models.Incident) error
	Get(ctx context.Context, incidentID string) (*models.Incident, error)

	// Update rewrites the mutable fields of the incident identified by
	// incident.IncidentID and bumps updated_at.
	Update(ctx context.Context, incident *models.Incident) error

	// List returns incidents ordered by creation time, newest first.
	List(ctx context.Context, filter Filter) ([]*models.Incident, error)

	// CountByStatus returns the number of incidents per status value.
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
