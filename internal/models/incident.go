package models

import "time"

// Incident statuses and priorities used by the incident center. Values match
// what the dashboard renders; the store itself does not restrict them.
const (
	IncidentStatusOpen       = "Open"
	IncidentStatusInProgress = "In Progress"
	IncidentStatusResolved   = "Resolved"
	IncidentStatusClosed     = "Closed"

	IncidentPriorityLow      = "Low"
	IncidentPriorityMedium   = "Medium"
	IncidentPriorityHigh     = "High"
	IncidentPriorityCritical = "Critical"
)

type Incident struct {
	ID          int64
	IncidentID  string
	Title       string
	Description string
	Status      string
	Priority    string
	Assignee    string
	Service     string
	Region      string
	Category    string
	Impact      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
