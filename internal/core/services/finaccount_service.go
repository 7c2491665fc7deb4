package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/dto"
	"github.com/EmadRadwan/Contracts-sub015/internal/middleware"
)

var (
	// ErrPaymentNotFound signals a payment id in a deposit/withdraw batch
	// that the payment collaborator does not know.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrStatusTransition signals an attempt to move a financial-account
	// transaction status backwards or out of a terminal state.
	ErrStatusTransition = errors.New("status may only advance forward")
)

// finAccountService serves the financial-account transaction ledger: the
// aggregator producing status-partitioned running totals and the
// deposit/withdraw orchestrator.
type finAccountService struct {
	finAccountRepo portsrepo.FinAccountRepository
	paymentRepo    portsrepo.PaymentReader
}

// NewFinAccountService creates a new FinAccountService.
func NewFinAccountService(finAccountRepo portsrepo.FinAccountRepository, paymentRepo portsrepo.PaymentReader) portssvc.FinAccountSvcFacade {
	return &finAccountService{
		finAccountRepo: finAccountRepo,
		paymentRepo:    paymentRepo,
	}
}

var _ portssvc.FinAccountSvcFacade = (*finAccountService)(nil)

// GetFinAccountByID retrieves a financial account.
func (s *finAccountService) GetFinAccountByID(ctx context.Context, finAccountID string) (*domain.FinAccount, error) {
	account, err := s.finAccountRepo.FindFinAccountByID(ctx, finAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find financial account %s: %w", finAccountID, err)
	}
	return account, nil
}

// matchesFilter applies the caller's list filter to one transaction. The
// sentinel reconciliation id selects transactions with no batch assigned
// and, unless the caller explicitly asked for canceled transactions,
// excludes canceled ones.
func matchesFilter(t *domain.FinAccountTrans, params *dto.ListFinAccountTransParams) bool {
	if params.FinAccountTransTypeID != nil && t.FinAccountTransTypeID != *params.FinAccountTransTypeID {
		return false
	}
	if params.StatusID != nil && t.StatusID != *params.StatusID {
		return false
	}
	if params.GlReconciliationID != nil {
		if *params.GlReconciliationID == domain.GlReconciliationNotAssigned {
			if t.GlReconciliationID != nil {
				return false
			}
			explicitCanceled := params.StatusID != nil && *params.StatusID == domain.FinAccountTransCanceled
			if !explicitCanceled && t.StatusID == domain.FinAccountTransCanceled {
				return false
			}
		} else if t.GlReconciliationID == nil || *t.GlReconciliationID != *params.GlReconciliationID {
			return false
		}
	}
	if params.FromTransactionDate != nil && t.TransactionDate.Before(*params.FromTransactionDate) {
		return false
	}
	if params.ThruTransactionDate != nil && t.TransactionDate.After(*params.ThruTransactionDate) {
		return false
	}
	if params.FromEntryDate != nil && t.EntryDate.Before(*params.FromEntryDate) {
		return false
	}
	if params.ThruEntryDate != nil && t.EntryDate.After(*params.ThruEntryDate) {
		return false
	}
	return true
}

// GetFinAccountTransListAndTotals computes the filtered transaction list
// plus the multi-dimensional running totals. Two passes over the account's
// ledger: an unfiltered pass for the status-partitioned grand totals and a
// filtered pass for the returned list and its own grand total. Both passes
// share the signed-amount convention.
func (s *finAccountService) GetFinAccountTransListAndTotals(ctx context.Context, finAccountID string, params dto.ListFinAccountTransParams) (*dto.FinAccountTransListAndTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.finAccountRepo.FindFinAccountByID(ctx, finAccountID); err != nil {
		return nil, fmt.Errorf("failed to find financial account %s: %w", finAccountID, err)
	}

	all, err := s.finAccountRepo.FindFinAccountTransByFinAccountID(ctx, finAccountID)
	if err != nil {
		logger.Error("Failed to load financial account ledger", slog.String("fin_account_id", finAccountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load transactions for financial account %s: %w", finAccountID, err)
	}

	totals := dto.FinAccountTransTotals{}

	// Unfiltered pass: status-partitioned totals over the whole account.
	for i := range all {
		signed := all[i].SignedAmount()
		switch all[i].StatusID {
		case domain.FinAccountTransCreated:
			totals.CreatedGrandTotal = totals.CreatedGrandTotal.Add(signed)
			totals.TotalCreatedTransactions++
			totals.CreatedApprovedGrandTotal = totals.CreatedApprovedGrandTotal.Add(signed)
			totals.TotalCreatedApprovedTransactions++
		case domain.FinAccountTransApproved:
			totals.ApprovedGrandTotal = totals.ApprovedGrandTotal.Add(signed)
			totals.TotalApprovedTransactions++
			totals.CreatedApprovedGrandTotal = totals.CreatedApprovedGrandTotal.Add(signed)
			totals.TotalCreatedApprovedTransactions++
		}
	}

	// Reconciliation total: approved transactions of the requested batch,
	// plus the optional opening balance added once.
	if params.OpeningBalance != nil {
		totals.GlReconciliationApprovedGrandTotal = *params.OpeningBalance
	}
	if params.GlReconciliationID != nil && *params.GlReconciliationID != domain.GlReconciliationNotAssigned {
		for i := range all {
			t := &all[i]
			if t.StatusID != domain.FinAccountTransApproved {
				continue
			}
			if t.GlReconciliationID == nil || *t.GlReconciliationID != *params.GlReconciliationID {
				continue
			}
			totals.GlReconciliationApprovedGrandTotal = totals.GlReconciliationApprovedGrandTotal.Add(t.SignedAmount())
		}
	}

	// Filtered pass: the returned list and its own grand total.
	filtered := make([]domain.FinAccountTrans, 0, len(all))
	for i := range all {
		if matchesFilter(&all[i], &params) {
			filtered = append(filtered, all[i])
			totals.GrandTotal = totals.GrandTotal.Add(all[i].SignedAmount())
			totals.TotalTransactions++
		}
	}

	logger.Debug("Financial account ledger aggregated",
		slog.String("fin_account_id", finAccountID),
		slog.Int("total_transactions", len(all)),
		slog.Int("filtered_transactions", len(filtered)))

	return &dto.FinAccountTransListAndTotals{
		FinAccountTrans: dto.ToFinAccountTransResponses(filtered),
		Totals:          totals,
	}, nil
}

// DepositWithdrawPayments batches payments into financial-account
// transactions: one per payment, or a single aggregate transaction when
// grouping is requested. The repository persists the batch atomically;
// partial application is not a valid outcome.
func (s *finAccountService) DepositWithdrawPayments(ctx context.Context, req dto.DepositWithdrawRequest, performerPartyID string) (*dto.DepositWithdrawResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.finAccountRepo.FindFinAccountByID(ctx, req.FinAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find financial account %s: %w", req.FinAccountID, err)
	}

	switch req.FinAccountTransTypeID {
	case domain.FinAccountTransDeposit, domain.FinAccountTransWithdrawal:
	default:
		return nil, apperrors.NewValidationError([]apperrors.FieldViolation{{
			Field:   "finAccountTransTypeID",
			Message: fmt.Sprintf("type must be %q or %q", domain.FinAccountTransDeposit, domain.FinAccountTransWithdrawal),
		}})
	}

	payments, err := s.paymentRepo.FindPaymentsByIDs(ctx, req.PaymentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve payments: %w", err)
	}
	for _, paymentID := range req.PaymentIDs {
		if _, ok := payments[paymentID]; !ok {
			return nil, fmt.Errorf("%w: %s: %w", ErrPaymentNotFound, paymentID, apperrors.ErrNotFound)
		}
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     performerPartyID,
		LastUpdatedAt: now,
		LastUpdatedBy: performerPartyID,
	}
	performedBy := performerPartyID

	var batch []domain.FinAccountTrans
	if req.GroupInOneTransaction {
		// One aggregate transaction represents the whole payment group.
		total := decimal.Zero
		for _, paymentID := range req.PaymentIDs {
			total = total.Add(payments[paymentID].Amount)
		}
		var comments *string
		if req.PaymentGroupName != nil || req.PaymentGroupTypeID != nil {
			c := "payment group"
			if req.PaymentGroupTypeID != nil {
				c = *req.PaymentGroupTypeID
			}
			if req.PaymentGroupName != nil {
				c = c + ": " + *req.PaymentGroupName
			}
			comments = &c
		}
		batch = append(batch, domain.FinAccountTrans{
			FinAccountTransID:     uuid.NewString(),
			FinAccountID:          account.FinAccountID,
			FinAccountTransTypeID: req.FinAccountTransTypeID,
			StatusID:              domain.FinAccountTransCreated,
			Amount:                total,
			TransactionDate:       now,
			EntryDate:             now,
			PerformedByPartyID:    &performedBy,
			Comments:              comments,
			AuditFields:           audit,
		})
	} else {
		for _, paymentID := range req.PaymentIDs {
			payment := payments[paymentID]
			pid := payment.PaymentID
			batch = append(batch, domain.FinAccountTrans{
				FinAccountTransID:     uuid.NewString(),
				FinAccountID:          account.FinAccountID,
				FinAccountTransTypeID: req.FinAccountTransTypeID,
				StatusID:              domain.FinAccountTransCreated,
				Amount:                payment.Amount,
				TransactionDate:       payment.EffectiveDate,
				EntryDate:             now,
				PaymentID:             &pid,
				PerformedByPartyID:    &performedBy,
				AuditFields:           audit,
			})
		}
	}

	if err := s.finAccountRepo.SaveFinAccountTransBatch(ctx, batch); err != nil {
		logger.Error("Failed to save financial account transaction batch",
			slog.String("fin_account_id", req.FinAccountID),
			slog.Int("batch_size", len(batch)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save financial account transactions: %w", err)
	}

	ids := make([]string, len(batch))
	for i := range batch {
		ids[i] = batch[i].FinAccountTransID
	}
	logger.Info("Payments converted to financial account transactions",
		slog.String("fin_account_id", req.FinAccountID),
		slog.Int("payment_count", len(req.PaymentIDs)),
		slog.Bool("grouped", req.GroupInOneTransaction))
	return &dto.DepositWithdrawResponse{FinAccountTransIDs: ids}, nil
}

// UpdateFinAccountTransStatus advances a transaction's status. The
// repository enforces a compare-and-set on the current status so two
// concurrent updates can not both win, and refreshes the owning account's
// cached balances when a transaction becomes approved.
func (s *finAccountService) UpdateFinAccountTransStatus(ctx context.Context, finAccountTransID string, target domain.FinAccountTransStatusID, updaterPartyID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch target {
	case domain.FinAccountTransApproved, domain.FinAccountTransCanceled:
	default:
		return apperrors.NewValidationError([]apperrors.FieldViolation{{
			Field:   "statusID",
			Message: fmt.Sprintf("target status must be %q or %q", domain.FinAccountTransApproved, domain.FinAccountTransCanceled),
		}})
	}

	// Status only moves forward from CREATED; APPROVED and CANCELED are
	// terminal. The repository's compare-and-set requires the row to still
	// be in the expected source status, so a transaction already approved
	// or canceled surfaces as a conflict.
	current := domain.FinAccountTransCreated
	if !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: %w", ErrStatusTransition, apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	if err := s.finAccountRepo.UpdateFinAccountTransStatus(ctx, finAccountTransID, current, target, updaterPartyID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Financial account transaction status conflict", slog.String("fin_account_trans_id", finAccountTransID), slog.String("target", string(target)))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update financial account transaction status", slog.String("fin_account_trans_id", finAccountTransID), slog.String("error", err.Error()))
		}
		return fmt.Errorf("failed to update status of financial account transaction %s: %w", finAccountTransID, err)
	}

	logger.Info("Financial account transaction status updated",
		slog.String("fin_account_trans_id", finAccountTransID),
		slog.String("target", string(target)))
	return nil
}
