// Package migrations embeds the Postgres schema history.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
