// Package migrations embeds the SQL schema for the seeded dataset.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
