// Package migrations embeds the SQL migration files so a network dataset
// can be initialised programmatically, with no filesystem path at runtime.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time. Pass this
// to goose via repo.Migrate when creating or upgrading a dataset.
//
//go:embed *.sql
var FS embed.FS
