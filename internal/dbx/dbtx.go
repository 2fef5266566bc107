// Package dbx holds the minimal database/sql surface shared by repositories.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the metadata repository.
// Both *sql.DB and *sql.Tx satisfy this interface, so repository code works
// the same inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
