package repositories

import (
	"context"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
)

// GlAccountReader defines read access to the GL account directory.
// The directory is reference data; there is no writer.
type GlAccountReader interface {
	// FindGlAccountByID retrieves a GL account by its identifier.
	FindGlAccountByID(ctx context.Context, glAccountID string) (*domain.GlAccount, error)
}

// UomReader defines read access to currency/UOM reference data.
type UomReader interface {
	// FindUomByID retrieves a unit of measure by its identifier.
	FindUomByID(ctx context.Context, uomID string) (*domain.Uom, error)

	// ListCurrencyUoms retrieves all currency units of measure.
	ListCurrencyUoms(ctx context.Context) ([]domain.Uom, error)
}
