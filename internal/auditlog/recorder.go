// Package auditlog records user-visible actions into the audit trail.
package auditlog

import (
	"context"
	"encoding/json"

	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/models"
	"github.com/webdevreplits/azure-01/internal/repositories/audit"
)

// Recorder writes audit entries. Writes are best-effort: failures are
// logged and never propagated, the action being audited must not fail
// because the trail does. A nil repository disables recording.
type Recorder struct {
	repo audit.Repository
	log  logging.Logger
}

func NewRecorder(repo audit.Repository, log logging.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record persists one audit entry. details is serialized to JSON text; a
// nil details stores an empty object.
func (r *Recorder) Record(ctx context.Context, user, action, resourceType, resourceID string, details any) {
	if r == nil || r.repo == nil {
		return
	}

	payload := []byte("{}")
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			r.log.Warn(ctx, "audit details not serializable", "action", action, "error", err)
		} else {
			payload = b
		}
	}

	entry := &models.AuditEntry{
		UserID:       user,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      string(payload),
	}
	if err := r.repo.Insert(ctx, entry); err != nil {
		r.log.Warn(ctx, "audit insert failed", "action", action, "error", err)
	}
}
