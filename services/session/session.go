package session

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
)

// With runs fn inside a database transaction: the transaction is committed
// when fn returns nil and rolled back otherwise, with fn's error returned
// to the caller unchanged. Errors raised by fn are never swallowed or
// retried here.
func With(ctx context.Context, db *pg.DB, fn func(tx *pg.Tx) error) error {
	tx, err := db.BeginContext(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		// Close rolls back unless Commit already ran.
		_ = tx.Close()
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}
