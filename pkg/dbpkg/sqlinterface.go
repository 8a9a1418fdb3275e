// Package dbpkg provides database setup, migrations and the query interface shared by repositories.
package dbpkg

import (
	"context"
	"database/sql"
)

// SQLInterface is satisfied by both *sql.DB and *sql.Tx.
//
// Repositories built on a *sql.Tx take part in the caller's transaction.
type SQLInterface interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}
