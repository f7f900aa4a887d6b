// Package migrations holds the versioned snapshot schema for the SQLite store.
// Files are named NNN_description.up.sql and applied in order.
package migrations

import "embed"

// FS contains the migration files.
//
//go:embed *.sql
var FS embed.FS
