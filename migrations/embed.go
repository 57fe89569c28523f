// Package migrations embeds the SQL schema migrations for the relational
// store backends. Files are named NNN_description.sql and live in one
// directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
