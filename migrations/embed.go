// Package migrations embeds SQL migration files applied via goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
