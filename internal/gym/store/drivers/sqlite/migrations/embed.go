// Package migrations embeds the SQLite schema migrations applied by
// sqlite.Store.ApplyMigrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
