package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines the explicit unit-of-work boundary. Every
// mutating operation runs inside one transaction created here and passed by
// parameter, never held as process-wide state.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Safe to defer; rolling back an
	// already committed transaction is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx)
}
