package models

import "time"

// AuditEntry records a user-visible action against the system. Details holds
// JSON text with action-specific context. Writes are best-effort: a failed
// audit insert never fails the action it describes.
type AuditEntry struct {
	ID           int64
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	Details      string
	Timestamp    time.Time
}
