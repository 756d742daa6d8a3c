// Package accounts persists user accounts with their credential material.
package accounts

import (
	"context"

	"github.com/webdevreplits/azure-01/internal/models"
)

// Repository is the storage contract for accounts. Implementations exist for
// both supported engines; callers never branch on the engine.
//
// Errors: Create returns common.ErrDuplicateAccount on a unique-constraint
// violation. GetByUsername, UpdateRole, UpdatePassword and Delete return
// common.ErrNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	UpdateRole(ctx context.Context, username, role string) error
	UpdatePassword(ctx context.Context, username, hash, salt string) error
	UpdateLastLogin(ctx context.Context, username string) error
	Delete(ctx context.Context, username string) error

	// List returns all accounts ordered by creation time, newest first.
	// Credential fields (hash, salt) are not populated.
	List(ctx context.Context) ([]*models.Account, error)
}
