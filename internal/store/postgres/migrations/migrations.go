// Package migrations embeds the postgres schema migrations.
package migrations

import "embed"

// FS holds the goose SQL migrations
//
//go:embed *.sql
var FS embed.FS
