package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
	"github.com/EmadRadwan/Contracts-sub015/internal/middleware"
)

// glAccountService serves the GL account directory: pure lookups, no
// mutation.
type glAccountService struct {
	glAccountRepo portsrepo.GlAccountReader
}

// NewGlAccountService creates a new GlAccountService.
func NewGlAccountService(glAccountRepo portsrepo.GlAccountReader) portssvc.GlAccountSvcFacade {
	return &glAccountService{glAccountRepo: glAccountRepo}
}

var _ portssvc.GlAccountSvcFacade = (*glAccountService)(nil)

// ResolveAccountType returns the account-type classification for an
// account identifier. Entry creation calls this to derive the entry's
// type; the type is never taken from the caller.
func (s *glAccountService) ResolveAccountType(ctx context.Context, glAccountID string) (domain.GlAccountTypeID, error) {
	account, err := s.glAccountRepo.FindGlAccountByID(ctx, glAccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to resolve GL account type", slog.String("gl_account_id", glAccountID), slog.String("error", err.Error()))
		}
		return "", fmt.Errorf("failed to resolve account type for GL account %s: %w", glAccountID, err)
	}
	return account.GlAccountTypeID, nil
}

// GetGlAccountByID retrieves the full directory entry.
func (s *glAccountService) GetGlAccountByID(ctx context.Context, glAccountID string) (*domain.GlAccount, error) {
	account, err := s.glAccountRepo.FindGlAccountByID(ctx, glAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find GL account %s: %w", glAccountID, err)
	}
	return account, nil
}
