package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/dto"
	"github.com/EmadRadwan/Contracts-sub015/internal/middleware"
)

// ErrAcctgTransPosted signals an attempted mutation of a transaction whose
// entries are already frozen by posting.
var ErrAcctgTransPosted = errors.New("accounting transaction is already posted")

// acctgTransService creates and maintains accounting transaction headers
// and entries while they are unposted.
type acctgTransService struct {
	acctgTransRepo portsrepo.AcctgTransRepository
	glAccountSvc   portssvc.GlAccountSvcFacade
}

// NewAcctgTransService creates a new AcctgTransService.
func NewAcctgTransService(acctgTransRepo portsrepo.AcctgTransRepository, glAccountSvc portssvc.GlAccountSvcFacade) portssvc.AcctgTransSvcFacade {
	return &acctgTransService{
		acctgTransRepo: acctgTransRepo,
		glAccountSvc:   glAccountSvc,
	}
}

var _ portssvc.AcctgTransSvcFacade = (*acctgTransService)(nil)

// validateHeader checks header-level invariants for create and update.
// Violations are collected per field so a UI can highlight all of them at
// once.
func validateHeader(transTypeID domain.AcctgTransTypeID, transactionDate time.Time, now time.Time) []apperrors.FieldViolation {
	var violations []apperrors.FieldViolation
	if !domain.ValidAcctgTransType(transTypeID) {
		violations = append(violations, apperrors.FieldViolation{
			Field:   "acctgTransTypeID",
			Message: fmt.Sprintf("%q is not a known transaction type", transTypeID),
		})
	}
	if transactionDate.After(now) {
		violations = append(violations, apperrors.FieldViolation{
			Field:   "transactionDate",
			Message: "transaction date must not be in the future",
		})
	}
	return violations
}

// validateEntryFields enforces field-level invariants on a single entry:
// non-negative amount (zero is a memo line), flag domain "D"/"C" when
// present, required currency and account linkage.
func validateEntryFields(req dto.CreateAcctgTransEntryRequest) []apperrors.FieldViolation {
	var violations []apperrors.FieldViolation
	if req.AcctgTransID == "" {
		violations = append(violations, apperrors.FieldViolation{
			Field:   "acctgTransID",
			Message: "transaction id is required",
		})
	}
	if req.GlAccountID == "" {
		violations = append(violations, apperrors.FieldViolation{
			Field:   "glAccountID",
			Message: "GL account id is required",
		})
	}
	if req.CurrencyUomID == "" {
		violations = append(violations, apperrors.FieldViolation{
			Field:   "currencyUomID",
			Message: "currency is required",
		})
	}
	if req.Amount.IsNegative() {
		violations = append(violations, apperrors.FieldViolation{
			Field:   "amount",
			Message: "amount must not be negative",
		})
	}
	switch req.DebitCreditFlag {
	case domain.FlagDebit, domain.FlagCredit, "":
		// empty is allowed only for entries not yet finalized
	default:
		violations = append(violations, apperrors.FieldViolation{
			Field:   "debitCreditFlag",
			Message: fmt.Sprintf("flag must be %q or %q", domain.FlagDebit, domain.FlagCredit),
		})
	}
	return violations
}

// CreateAcctgTrans persists a new unposted transaction header.
func (s *acctgTransService) CreateAcctgTrans(ctx context.Context, req dto.CreateAcctgTransRequest, creatorPartyID string) (*domain.AcctgTrans, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if violations := validateHeader(req.AcctgTransTypeID, req.TransactionDate, now); len(violations) > 0 {
		return nil, apperrors.NewValidationError(violations)
	}

	fiscalType := req.GlFiscalTypeID
	if fiscalType == "" {
		fiscalType = domain.GlFiscalTypeActual
	}

	trans := domain.AcctgTrans{
		AcctgTransID:     uuid.NewString(),
		AcctgTransTypeID: req.AcctgTransTypeID,
		Description:      req.Description,
		TransactionDate:  req.TransactionDate,
		GlFiscalTypeID:   fiscalType,
		IsPosted:         false,
		InvoiceID:        req.InvoiceID,
		PaymentID:        req.PaymentID,
		ShipmentID:       req.ShipmentID,
		FixedAssetID:     req.FixedAssetID,
		PartyID:          req.PartyID,
		RoleTypeID:       req.RoleTypeID,
		WorkEffortID:     req.WorkEffortID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorPartyID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorPartyID,
		},
	}

	if err := s.acctgTransRepo.SaveAcctgTrans(ctx, trans, nil); err != nil {
		logger.Error("Failed to save accounting transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save accounting transaction: %w", err)
	}

	logger.Info("Accounting transaction created", slog.String("acctg_trans_id", trans.AcctgTransID), slog.String("type", string(trans.AcctgTransTypeID)))
	return &trans, nil
}

// CreateAcctgTransEntry validates and appends one entry to an existing
// transaction. The GL account type is derived via the resolver so the type
// can never drift from the account.
func (s *acctgTransService) CreateAcctgTransEntry(ctx context.Context, req dto.CreateAcctgTransEntryRequest, creatorPartyID string) (*domain.AcctgTransEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if violations := validateEntryFields(req); len(violations) > 0 {
		return nil, apperrors.NewValidationError(violations)
	}

	// The owning transaction must exist (any posting status for the lookup;
	// posted transactions reject the append below).
	trans, err := s.acctgTransRepo.FindAcctgTransByID(ctx, req.AcctgTransID)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounting transaction %s: %w", req.AcctgTransID, err)
	}
	if trans.IsPosted {
		return nil, fmt.Errorf("%w: %w", ErrAcctgTransPosted, apperrors.ErrConflict)
	}

	accountType, err := s.glAccountSvc.ResolveAccountType(ctx, req.GlAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.AcctgTransEntry{
		AcctgTransID:      req.AcctgTransID,
		GlAccountID:       req.GlAccountID,
		GlAccountTypeID:   accountType,
		DebitCreditFlag:   req.DebitCreditFlag,
		Amount:            req.Amount,
		CurrencyUomID:     req.CurrencyUomID,
		OrigAmount:        req.OrigAmount,
		OrigCurrencyUomID: req.OrigCurrencyUomID,
		PartyID:           req.PartyID,
		ProductID:         req.ProductID,
		InventoryItemID:   req.InventoryItemID,
		DueDate:           req.DueDate,
		GroupID:           req.GroupID,
		ReconcileStatusID: req.ReconcileStatusID,
		SettlementTermID:  req.SettlementTermID,
		IsSummary:         req.IsSummary,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorPartyID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorPartyID,
		},
	}

	saved, err := s.acctgTransRepo.AppendEntry(ctx, entry)
	if err != nil {
		logger.Error("Failed to append entry", slog.String("acctg_trans_id", req.AcctgTransID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to append entry to transaction %s: %w", req.AcctgTransID, err)
	}

	logger.Info("Entry appended", slog.String("acctg_trans_id", saved.AcctgTransID), slog.Int("seq_id", saved.AcctgTransEntrySeqID))
	return saved, nil
}

// QuickCreateAcctgTrans atomically creates a transaction header plus
// exactly two entries carrying the same amount: one debit, one credit.
// The result is balanced by construction.
func (s *acctgTransService) QuickCreateAcctgTrans(ctx context.Context, req dto.QuickCreateAcctgTransRequest, creatorPartyID string) (*domain.AcctgTrans, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	violations := validateHeader(req.AcctgTransTypeID, req.TransactionDate, now)
	if req.Amount.IsNegative() {
		violations = append(violations, apperrors.FieldViolation{Field: "amount", Message: "amount must not be negative"})
	}
	if req.DebitGlAccountID == "" {
		violations = append(violations, apperrors.FieldViolation{Field: "debitGlAccountID", Message: "debit GL account id is required"})
	}
	if req.CreditGlAccountID == "" {
		violations = append(violations, apperrors.FieldViolation{Field: "creditGlAccountID", Message: "credit GL account id is required"})
	}
	if req.CurrencyUomID == "" {
		violations = append(violations, apperrors.FieldViolation{Field: "currencyUomID", Message: "currency is required"})
	}
	if len(violations) > 0 {
		return nil, apperrors.NewValidationError(violations)
	}

	debitType, err := s.glAccountSvc.ResolveAccountType(ctx, req.DebitGlAccountID)
	if err != nil {
		return nil, err
	}
	creditType, err := s.glAccountSvc.ResolveAccountType(ctx, req.CreditGlAccountID)
	if err != nil {
		return nil, err
	}

	fiscalType := req.GlFiscalTypeID
	if fiscalType == "" {
		fiscalType = domain.GlFiscalTypeActual
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorPartyID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorPartyID,
	}

	trans := domain.AcctgTrans{
		AcctgTransID:     uuid.NewString(),
		AcctgTransTypeID: req.AcctgTransTypeID,
		Description:      req.Description,
		TransactionDate:  req.TransactionDate,
		GlFiscalTypeID:   fiscalType,
		IsPosted:         false,
		InvoiceID:        req.InvoiceID,
		PaymentID:        req.PaymentID,
		FixedAssetID:     req.FixedAssetID,
		PartyID:          req.PartyID,
		AuditFields:      audit,
	}

	entries := []domain.AcctgTransEntry{
		{
			AcctgTransID:         trans.AcctgTransID,
			AcctgTransEntrySeqID: 1,
			GlAccountID:          req.DebitGlAccountID,
			GlAccountTypeID:      debitType,
			DebitCreditFlag:      domain.FlagDebit,
			Amount:               req.Amount,
			CurrencyUomID:        req.CurrencyUomID,
			PartyID:              req.PartyID,
			ProductID:            req.ProductID,
			AuditFields:          audit,
		},
		{
			AcctgTransID:         trans.AcctgTransID,
			AcctgTransEntrySeqID: 2,
			GlAccountID:          req.CreditGlAccountID,
			GlAccountTypeID:      creditType,
			DebitCreditFlag:      domain.FlagCredit,
			Amount:               req.Amount,
			CurrencyUomID:        req.CurrencyUomID,
			PartyID:              req.PartyID,
			ProductID:            req.ProductID,
			AuditFields:          audit,
		},
	}

	if err := s.acctgTransRepo.SaveAcctgTrans(ctx, trans, entries); err != nil {
		logger.Error("Failed to quick-create accounting transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save accounting transaction: %w", err)
	}

	trans.Entries = entries
	logger.Info("Accounting transaction quick-created",
		slog.String("acctg_trans_id", trans.AcctgTransID),
		slog.String("debit_account", req.DebitGlAccountID),
		slog.String("credit_account", req.CreditGlAccountID),
		slog.String("amount", req.Amount.String()))
	return &trans, nil
}

// UpdateAcctgTrans updates header fields while the transaction is unposted.
// If any validation fails the whole update is discarded.
func (s *acctgTransService) UpdateAcctgTrans(ctx context.Context, acctgTransID string, req dto.UpdateAcctgTransRequest, updaterPartyID string) (*domain.AcctgTrans, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	trans, err := s.acctgTransRepo.FindAcctgTransByID(ctx, acctgTransID)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounting transaction %s: %w", acctgTransID, err)
	}
	if trans.IsPosted {
		logger.Warn("Rejected update of posted transaction", slog.String("acctg_trans_id", acctgTransID))
		return nil, fmt.Errorf("%w: %w", ErrAcctgTransPosted, apperrors.ErrConflict)
	}

	updated := false
	if req.AcctgTransTypeID != nil {
		trans.AcctgTransTypeID = *req.AcctgTransTypeID
		updated = true
	}
	if req.Description != nil {
		trans.Description = *req.Description
		updated = true
	}
	if req.TransactionDate != nil {
		trans.TransactionDate = *req.TransactionDate
		updated = true
	}
	if req.GlFiscalTypeID != nil {
		trans.GlFiscalTypeID = *req.GlFiscalTypeID
		updated = true
	}
	if req.InvoiceID != nil {
		trans.InvoiceID = req.InvoiceID
		updated = true
	}
	if req.PaymentID != nil {
		trans.PaymentID = req.PaymentID
		updated = true
	}
	if req.ShipmentID != nil {
		trans.ShipmentID = req.ShipmentID
		updated = true
	}
	if req.FixedAssetID != nil {
		trans.FixedAssetID = req.FixedAssetID
		updated = true
	}
	if req.PartyID != nil {
		trans.PartyID = req.PartyID
		updated = true
	}
	if req.RoleTypeID != nil {
		trans.RoleTypeID = req.RoleTypeID
		updated = true
	}
	if req.WorkEffortID != nil {
		trans.WorkEffortID = req.WorkEffortID
		updated = true
	}

	if !updated {
		return trans, nil
	}

	now := time.Now().UTC()
	if violations := validateHeader(trans.AcctgTransTypeID, trans.TransactionDate, now); len(violations) > 0 {
		return nil, apperrors.NewValidationError(violations)
	}

	trans.LastUpdatedAt = now
	trans.LastUpdatedBy = updaterPartyID

	if err := s.acctgTransRepo.UpdateAcctgTrans(ctx, *trans); err != nil {
		logger.Error("Failed to update accounting transaction", slog.String("acctg_trans_id", acctgTransID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update accounting transaction %s: %w", acctgTransID, err)
	}

	logger.Info("Accounting transaction updated", slog.String("acctg_trans_id", acctgTransID))
	return trans, nil
}

// DeleteAcctgTransEntry removes one entry by (transaction id, sequence id).
// Deletion after posting is disallowed: it would silently break the balance
// of a committed ledger event.
func (s *acctgTransService) DeleteAcctgTransEntry(ctx context.Context, acctgTransID string, acctgTransEntrySeqID int) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	trans, err := s.acctgTransRepo.FindAcctgTransByID(ctx, acctgTransID)
	if err != nil {
		return fmt.Errorf("failed to find accounting transaction %s: %w", acctgTransID, err)
	}
	if trans.IsPosted {
		logger.Warn("Rejected entry deletion on posted transaction", slog.String("acctg_trans_id", acctgTransID), slog.Int("seq_id", acctgTransEntrySeqID))
		return fmt.Errorf("%w: %w", ErrAcctgTransPosted, apperrors.ErrConflict)
	}

	if err := s.acctgTransRepo.DeleteEntry(ctx, acctgTransID, acctgTransEntrySeqID); err != nil {
		return fmt.Errorf("failed to delete entry %d of transaction %s: %w", acctgTransEntrySeqID, acctgTransID, err)
	}

	logger.Info("Entry deleted", slog.String("acctg_trans_id", acctgTransID), slog.Int("seq_id", acctgTransEntrySeqID))
	return nil
}

// GetAcctgTransByID retrieves a header with its entries populated.
func (s *acctgTransService) GetAcctgTransByID(ctx context.Context, acctgTransID string) (*domain.AcctgTrans, error) {
	trans, err := s.acctgTransRepo.FindAcctgTransByID(ctx, acctgTransID)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounting transaction %s: %w", acctgTransID, err)
	}

	entries, err := s.acctgTransRepo.FindEntriesByAcctgTransID(ctx, acctgTransID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for transaction %s: %w", acctgTransID, err)
	}
	trans.Entries = entries
	return trans, nil
}

// ListAcctgTrans retrieves a paginated list of transaction headers.
func (s *acctgTransService) ListAcctgTrans(ctx context.Context, params dto.ListAcctgTransParams) (*dto.ListAcctgTransResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	headers, nextToken, err := s.acctgTransRepo.ListAcctgTrans(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounting transactions: %w", err)
	}

	responses := make([]dto.AcctgTransResponse, len(headers))
	for i := range headers {
		responses[i] = dto.ToAcctgTransResponse(&headers[i])
	}
	return &dto.ListAcctgTransResponse{AcctgTrans: responses, NextToken: nextToken}, nil
}
