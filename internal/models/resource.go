package models

import "time"

// Resource is a cached cloud resource row. Tags and Properties are stored as
// JSON text; the postgres backend keeps them in JSONB columns, sqlite in
// plain TEXT.
type Resource struct {
	ID             int64
	ResourceID     string
	Name           string
	Type           string
	ResourceGroup  string
	SubscriptionID string
	Region         string
	Status         string
	Tags           string
	Properties     string
	LastUpdated    time.Time
}
