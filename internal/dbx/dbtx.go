// Package dbx carries the two small database primitives the Postgres
// repositories share: DBTX, the interface that lets one repository run
// against either a plain connection or a transaction, and WithTx, which
// brackets a function in a transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the intersection of *sql.DB and *sql.Tx the repositories need.
// Services compose several repositories into one transaction by rebinding
// them to the transactional handle.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when fn errors or panics. Panics keep unwinding after the rollback.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	committed = true
	return tx.Commit()
}
