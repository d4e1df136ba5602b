// Package migrations embeds the goose SQL migrations that own the authgate
// schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
