// Package settings persists dashboard configuration key/value pairs.
package settings

import (
	"context"

	"github.com/webdevreplits/azure-01/internal/models"
)

// Repository is the storage contract for settings. Values are JSON text.
// Get returns common.ErrNotFound for unknown keys.
type Repository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value, description string) error

	// List returns all settings ordered by key.
	List(ctx context.Context) ([]*models.Setting, error)
}
