// Package migrations embeds the SQL migration files so a single binary can
// bring any database file up to the current schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
