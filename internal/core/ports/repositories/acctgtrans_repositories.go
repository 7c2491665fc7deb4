package repositories

import (
	"context"
	"time"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
)

// AcctgTransReader defines read operations for accounting transaction data.
type AcctgTransReader interface {
	// FindAcctgTransByID retrieves a transaction header by its identifier.
	FindAcctgTransByID(ctx context.Context, acctgTransID string) (*domain.AcctgTrans, error)

	// FindEntriesByAcctgTransID retrieves all entries of a transaction
	// ordered by sequence id.
	FindEntriesByAcctgTransID(ctx context.Context, acctgTransID string) ([]domain.AcctgTransEntry, error)

	// ListAcctgTrans retrieves a paginated list of transaction headers using
	// token-based pagination. It returns the headers, a token for the next
	// page, and an error.
	ListAcctgTrans(ctx context.Context, limit int, nextToken *string) ([]domain.AcctgTrans, *string, error)
}

// AcctgTransWriter defines write operations for accounting transaction data.
// Every method is a self-contained unit of work: either all of its writes
// commit or none do.
type AcctgTransWriter interface {
	// SaveAcctgTrans persists a header together with its initial entries
	// atomically.
	SaveAcctgTrans(ctx context.Context, trans domain.AcctgTrans, entries []domain.AcctgTransEntry) error

	// UpdateAcctgTrans updates mutable header fields of an unposted
	// transaction. Returns apperrors.ErrConflict when the transaction has
	// already been posted.
	UpdateAcctgTrans(ctx context.Context, trans domain.AcctgTrans) error

	// AppendEntry inserts one entry, assigning the next sequence id for the
	// owning transaction. Returns the persisted entry with its sequence set.
	AppendEntry(ctx context.Context, entry domain.AcctgTransEntry) (*domain.AcctgTransEntry, error)

	// DeleteEntry removes a single entry by composite key. Returns
	// apperrors.ErrConflict when the owning transaction is posted.
	DeleteEntry(ctx context.Context, acctgTransID string, acctgTransEntrySeqID int) error

	// MarkPosted flips the posted flag with a compare-and-set: the update
	// applies only while is_posted is still false, inside the same
	// transaction scope. Returns apperrors.ErrConflict when the flag was
	// already set, so a concurrent double post can never re-apply.
	MarkPosted(ctx context.Context, acctgTransID string, postedDate time.Time, updatedBy string) error
}

// AcctgTransRepository combines reader and writer for clients that need
// both sides.
type AcctgTransRepository interface {
	AcctgTransReader
	AcctgTransWriter
}
