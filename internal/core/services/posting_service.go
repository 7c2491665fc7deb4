package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/middleware"
	"github.com/EmadRadwan/Contracts-sub015/internal/utils/accounting"
)

// postingService is the state machine transitioning an accounting
// transaction from unposted to posted. The transition is one-way: a posted
// transaction is frozen and a second posting attempt is rejected rather
// than re-applied.
type postingService struct {
	acctgTransRepo portsrepo.AcctgTransRepository
}

// NewPostingService creates a new PostingService.
func NewPostingService(acctgTransRepo portsrepo.AcctgTransRepository) portssvc.PostingSvcFacade {
	return &postingService{acctgTransRepo: acctgTransRepo}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostAcctgTrans runs the posting algorithm:
//
//  1. Load the header; an already-posted transaction is a conflict.
//  2. Load all entries; entries still missing a debit/credit flag make the
//     transaction unpostable.
//  3. Group entries by currency and compare debit and credit sums with
//     exact decimal equality.
//  4. Any mismatch produces one message per offending currency and aborts
//     with no state change.
//  5. When balanced and not verify-only, flip the posted flag with a
//     compare-and-set inside the repository's transaction scope; a
//     concurrent post that lost the race gets a conflict, never a second
//     ledger effect.
//
// Verify-only mode runs all checks and reports the message list without
// persisting anything.
func (s *postingService) PostAcctgTrans(ctx context.Context, acctgTransID string, verifyOnly bool, posterPartyID string) (*domain.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	trans, err := s.acctgTransRepo.FindAcctgTransByID(ctx, acctgTransID)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounting transaction %s: %w", acctgTransID, err)
	}
	if trans.IsPosted {
		logger.Warn("Rejected posting of already-posted transaction", slog.String("acctg_trans_id", acctgTransID))
		return nil, fmt.Errorf("%w: %w", ErrAcctgTransPosted, apperrors.ErrConflict)
	}

	entries, err := s.acctgTransRepo.FindEntriesByAcctgTransID(ctx, acctgTransID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries for transaction %s: %w", acctgTransID, err)
	}

	result := &domain.PostingResult{
		AcctgTransID: acctgTransID,
		VerifyOnly:   verifyOnly,
	}

	if len(entries) == 0 {
		result.Messages = append(result.Messages, "transaction has no entries to post")
	}
	for _, e := range entries {
		if e.DebitCreditFlag == "" {
			result.Messages = append(result.Messages,
				fmt.Sprintf("entry %d has no debit/credit flag and is not finalized", e.AcctgTransEntrySeqID))
		}
	}

	result.Imbalances = accounting.FindImbalances(entries)
	for _, im := range result.Imbalances {
		result.Messages = append(result.Messages, im.Message())
	}

	if !result.Succeeded() {
		logger.Info("Posting verification failed",
			slog.String("acctg_trans_id", acctgTransID),
			slog.Int("message_count", len(result.Messages)),
			slog.Bool("verify_only", verifyOnly))
		return result, nil
	}

	if verifyOnly {
		logger.Debug("Posting verification passed", slog.String("acctg_trans_id", acctgTransID))
		return result, nil
	}

	postedDate := time.Now().UTC()
	if err := s.acctgTransRepo.MarkPosted(ctx, acctgTransID, postedDate, posterPartyID); err != nil {
		logger.Error("Failed to mark transaction posted", slog.String("acctg_trans_id", acctgTransID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to post transaction %s: %w", acctgTransID, err)
	}

	result.Posted = true
	result.PostedDate = &postedDate
	logger.Info("Accounting transaction posted", slog.String("acctg_trans_id", acctgTransID), slog.Time("posted_date", postedDate))
	return result, nil
}
