// Package migrations holds the versioned SQL schema, embedded so the server,
// the migrate CLI and integration tests apply the same files.
package migrations

import "embed"

// FS contains every *.up.sql and *.down.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
