// Package migrations embeds the SQLite schema history.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
