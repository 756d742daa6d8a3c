// Package storage selects a relational backend for the dashboard and owns
// its schema. The primary engine is PostgreSQL; when it is unreachable the
// selector falls back to an embedded SQLite file. Callers work through
// per-entity repositories and never branch on the selected engine.
package storage

import (
	"context"
	"database/sql"

	"github.com/webdevreplits/azure-01/internal/repositories/accounts"
	"github.com/webdevreplits/azure-01/internal/repositories/audit"
	"github.com/webdevreplits/azure-01/internal/repositories/incidents"
	"github.com/webdevreplits/azure-01/internal/repositories/resources"
	"github.com/webdevreplits/azure-01/internal/repositories/settings"
)

// Engine tags the selected storage engine. It is informational (health
// reporting); repositories hide all dialect differences.
type Engine string

const (
	EnginePostgres Engine = "postgresql"
	EngineSQLite   Engine = "sqlite"
)

// Backend abstracts a connected storage engine. One Backend is opened per
// process and closed on shutdown.
type Backend interface {
	Engine() Engine
	Conn() *sql.DB
	Close() error

	// EnsureSchema creates the five dashboard tables and their indexes if
	// absent and applies additive column upgrades to legacy accounts
	// tables. Idempotent, safe to call on every startup.
	EnsureSchema(ctx context.Context) error

	Accounts() accounts.Repository
	Incidents() incidents.Repository
	Resources() resources.Repository
	Settings() settings.Repository
	Audit() audit.Repository

	// ResourcesInTx runs fn against a resource repository bound to a
	// single transaction. Bulk cache refreshes go through here so a
	// partial write never survives a failure.
	ResourcesInTx(ctx context.Context, fn func(resources.Repository) error) error
}
