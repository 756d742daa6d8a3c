// Package migrations embeds the goose migration scripts. Each supported
// engine has its own directory because the DDL dialects differ (SERIAL vs
// AUTOINCREMENT, JSONB vs TEXT); the schema they produce is the same five
// tables.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
