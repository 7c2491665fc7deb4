package services

import (
	"context"
	"fmt"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
	portssvc "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/services"
)

// uomService serves currency/UOM reference data.
type uomService struct {
	uomRepo portsrepo.UomReader
}

// NewUomService creates a new UomService.
func NewUomService(uomRepo portsrepo.UomReader) portssvc.UomSvcFacade {
	return &uomService{uomRepo: uomRepo}
}

var _ portssvc.UomSvcFacade = (*uomService)(nil)

func (s *uomService) GetUomByID(ctx context.Context, uomID string) (*domain.Uom, error) {
	uom, err := s.uomRepo.FindUomByID(ctx, uomID)
	if err != nil {
		return nil, fmt.Errorf("failed to find UOM %s: %w", uomID, err)
	}
	return uom, nil
}

func (s *uomService) ListCurrencyUoms(ctx context.Context) ([]domain.Uom, error) {
	uoms, err := s.uomRepo.ListCurrencyUoms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency UOMs: %w", err)
	}
	return uoms, nil
}
