package repositories

import (
	"context"
	"time"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
)

// FinAccountReader defines read operations for financial account data.
type FinAccountReader interface {
	// FindFinAccountByID retrieves a financial account by its identifier.
	FindFinAccountByID(ctx context.Context, finAccountID string) (*domain.FinAccount, error)

	// FindFinAccountTransByFinAccountID retrieves every transaction of the
	// account, ordered by transaction date then entry date. The aggregator
	// filters in memory; the authoritative ledger is re-read on every call.
	FindFinAccountTransByFinAccountID(ctx context.Context, finAccountID string) ([]domain.FinAccountTrans, error)
}

// FinAccountWriter defines write operations for financial account data.
type FinAccountWriter interface {
	// SaveFinAccountTransBatch persists the whole batch atomically: partial
	// application is not a valid outcome.
	SaveFinAccountTransBatch(ctx context.Context, transactions []domain.FinAccountTrans) error

	// UpdateFinAccountTransStatus advances a transaction's status with a
	// compare-and-set on the current status and, when the target status is
	// APPROVED, refreshes the owning account's cached balances within the
	// same database transaction. Returns apperrors.ErrConflict when the
	// stored status no longer matches current.
	UpdateFinAccountTransStatus(ctx context.Context, finAccountTransID string, current, target domain.FinAccountTransStatusID, updatedBy string, updatedAt time.Time) error
}

// FinAccountRepository combines reader and writer.
type FinAccountRepository interface {
	FinAccountReader
	FinAccountWriter
}

// PaymentReader resolves payment identifiers for the deposit/withdraw
// orchestrator. Payments are owned by an external collaborator; only the
// minimal projection is read.
type PaymentReader interface {
	// FindPaymentsByIDs retrieves payments keyed by payment id. Missing ids
	// are simply absent from the map.
	FindPaymentsByIDs(ctx context.Context, paymentIDs []string) (map[string]domain.Payment, error)
}
