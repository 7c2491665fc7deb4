package services

import (
	"context"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
)

// GlAccountSvcFacade exposes the GL account directory. ResolveAccountType
// is the lookup entry creation uses to derive the entry's account type;
// callers never set the type directly, preventing type/account drift.
type GlAccountSvcFacade interface {
	// ResolveAccountType returns the account-type classification for the
	// given account id. Side-effect-free. Returns apperrors.ErrNotFound
	// when the account is unknown.
	ResolveAccountType(ctx context.Context, glAccountID string) (domain.GlAccountTypeID, error)

	// GetGlAccountByID retrieves the full directory entry.
	GetGlAccountByID(ctx context.Context, glAccountID string) (*domain.GlAccount, error)
}

// UomSvcFacade exposes currency/UOM reference data.
type UomSvcFacade interface {
	// GetUomByID retrieves a unit of measure.
	GetUomByID(ctx context.Context, uomID string) (*domain.Uom, error)

	// ListCurrencyUoms retrieves all currency units of measure.
	ListCurrencyUoms(ctx context.Context) ([]domain.Uom, error)
}
