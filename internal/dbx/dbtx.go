// Package dbx holds the minimal database/sql abstraction shared by SQL
// repositories: the DBTX interface is satisfied by both *sql.DB and *sql.Tx,
// so a repository can be bound to either without knowing which.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
