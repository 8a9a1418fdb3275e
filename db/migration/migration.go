// Package migration embeds the SQL schema migrations of the wallet database.
package migration

import "embed"

// Dir is the directory of FS holding the migration files.
const Dir = "."

// FS holds every *.up.sql and *.down.sql migration.
//
//go:embed *.sql
var FS embed.FS
