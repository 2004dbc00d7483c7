// Package migrations embeds the schema migration files so startup can apply
// them without shipping the files separately.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
