// Package migrations embeds the SQL migrations for the local database so
// goose can apply them from the binary itself.
package migrations

import "embed"

// FS holds all *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
