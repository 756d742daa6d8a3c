// Package resources is the cache of cloud resources last fetched from the
// provider client.
package resources

import (
	"context"

	"github.com/webdevreplits/azure-01/internal/models"
)

// Filter narrows List results; zero values mean "no filter".
type Filter struct {
	ResourceGroup string
	Type          string
	Region        string
	Status        string
}

// Repository is the storage contract for the resource cache.
type Repository interface {
	// Upsert inserts the resource or, when resource_id already exists,
	// replaces the cached row.
	Upsert(ctx context.Context, resource *models.Resource) error

	// List returns cached resources matching the filter, ordered by name.
	List(ctx context.Context, filter Filter) ([]*models.Resource, error)

	Count(ctx context.Context) (int64, error)
}
