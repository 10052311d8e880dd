// Package dmbot is the module root. It embeds the SQL migrations so the
// migrate command can apply them from a single self-contained binary.
package dmbot

import "embed"

// Migrations contains the goose SQL migrations applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
