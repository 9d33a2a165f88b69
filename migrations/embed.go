// Package migrations embeds the SQL migrations for the Postgres search log.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
