package services

import (
	"context"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	"github.com/EmadRadwan/Contracts-sub015/internal/dto"
)

// FinAccountReaderSvc defines read/aggregation operations over the
// financial-account transaction ledger.
type FinAccountReaderSvc interface {
	// GetFinAccountByID retrieves a financial account.
	GetFinAccountByID(ctx context.Context, finAccountID string) (*domain.FinAccount, error)

	// GetFinAccountTransListAndTotals computes the filtered transaction
	// list plus the status-partitioned running totals for a financial
	// account. Reads fail closed: an error result, never partial totals.
	GetFinAccountTransListAndTotals(ctx context.Context, finAccountID string, params dto.ListFinAccountTransParams) (*dto.FinAccountTransListAndTotals, error)
}

// FinAccountWriterSvc defines mutations of the financial-account ledger.
type FinAccountWriterSvc interface {
	// DepositWithdrawPayments batches a set of payments into one or many
	// financial-account transactions, optionally merged under a payment
	// group. Atomic across the whole batch.
	DepositWithdrawPayments(ctx context.Context, req dto.DepositWithdrawRequest, performerPartyID string) (*dto.DepositWithdrawResponse, error)

	// UpdateFinAccountTransStatus advances a transaction's status. Status
	// only moves forward; CANCELED is terminal.
	UpdateFinAccountTransStatus(ctx context.Context, finAccountTransID string, target domain.FinAccountTransStatusID, updaterPartyID string) error
}

// FinAccountSvcFacade combines all financial-account service interfaces.
type FinAccountSvcFacade interface {
	FinAccountReaderSvc
	FinAccountWriterSvc
}
