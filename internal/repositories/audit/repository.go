// Package audit persists the audit trail of user-visible actions.
package audit

import (
	"context"

	"github.com/webdevreplits/azure-01/internal/models"
)

// Repository is the storage contract for audit entries. Entries are never
// updated or deleted through this interface.
type Repository interface {
	Insert(ctx context.Context, entry *models.AuditEntry) error

	// List returns the most recent entries, newest first. limit <= 0 means
	// a default page of 100.
	List(ctx context.Context, limit int) ([]*models.AuditEntry, error)

	// ListAll returns the whole trail, newest first. Exports go through
	// here; List always pages.
	ListAll(ctx context.Context) ([]*models.AuditEntry, error)
}
