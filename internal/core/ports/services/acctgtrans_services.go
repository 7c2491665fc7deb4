package services

import (
	"context"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	"github.com/EmadRadwan/Contracts-sub015/internal/dto"
)

// AcctgTransReaderSvc defines read operations for accounting transactions.
type AcctgTransReaderSvc interface {
	// GetAcctgTransByID retrieves a transaction header with its entries.
	GetAcctgTransByID(ctx context.Context, acctgTransID string) (*domain.AcctgTrans, error)

	// ListAcctgTrans retrieves a paginated list of transaction headers.
	ListAcctgTrans(ctx context.Context, params dto.ListAcctgTransParams) (*dto.ListAcctgTransResponse, error)
}

// AcctgTransWriterSvc defines write operations for accounting transactions.
type AcctgTransWriterSvc interface {
	// CreateAcctgTrans persists a new unposted transaction header.
	CreateAcctgTrans(ctx context.Context, req dto.CreateAcctgTransRequest, creatorPartyID string) (*domain.AcctgTrans, error)

	// CreateAcctgTransEntry validates and appends one entry to an existing
	// transaction, deriving the GL account type via the resolver.
	CreateAcctgTransEntry(ctx context.Context, req dto.CreateAcctgTransEntryRequest, creatorPartyID string) (*domain.AcctgTransEntry, error)

	// QuickCreateAcctgTrans atomically creates a header plus a balanced
	// debit/credit entry pair for a single amount.
	QuickCreateAcctgTrans(ctx context.Context, req dto.QuickCreateAcctgTransRequest, creatorPartyID string) (*domain.AcctgTrans, error)

	// UpdateAcctgTrans updates header fields of an unposted transaction.
	// The whole update is discarded if any validation fails.
	UpdateAcctgTrans(ctx context.Context, acctgTransID string, req dto.UpdateAcctgTransRequest, updaterPartyID string) (*domain.AcctgTrans, error)

	// DeleteAcctgTransEntry removes one entry by composite key. Entries of
	// posted transactions can not be removed.
	DeleteAcctgTransEntry(ctx context.Context, acctgTransID string, acctgTransEntrySeqID int) error
}

// AcctgTransSvcFacade combines all accounting-transaction service
// interfaces for clients that need access to all operations.
type AcctgTransSvcFacade interface {
	AcctgTransReaderSvc
	AcctgTransWriterSvc
}

// PostingSvcFacade is the state machine that transitions a transaction from
// unposted to posted.
type PostingSvcFacade interface {
	// PostAcctgTrans runs the posting algorithm. With verifyOnly the checks
	// run and the resulting message list is returned without persisting any
	// state change. Business-rule violations are carried in the result;
	// errors are reserved for unknown transactions, double-posting attempts
	// and storage faults.
	PostAcctgTrans(ctx context.Context, acctgTransID string, verifyOnly bool, posterPartyID string) (*domain.PostingResult, error)
}
