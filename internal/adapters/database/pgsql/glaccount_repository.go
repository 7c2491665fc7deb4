package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
)

// PgxGlAccountRepository serves the GL account directory and currency UOM
// reference data. Both are read-only for the ledger core; rows are seeded
// by migration.
type PgxGlAccountRepository struct {
	BaseRepository
}

// NewGlAccountRepository creates a new repository for GL account and UOM data.
func NewGlAccountRepository(pool *pgxpool.Pool) *PgxGlAccountRepository {
	return &PgxGlAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GlAccountReader = (*PgxGlAccountRepository)(nil)
var _ portsrepo.UomReader = (*PgxGlAccountRepository)(nil)

// FindGlAccountByID retrieves a GL account by its identifier.
func (r *PgxGlAccountRepository) FindGlAccountByID(ctx context.Context, glAccountID string) (*domain.GlAccount, error) {
	query := `
		SELECT gl_account_id, gl_account_type_id, account_name
		FROM gl_accounts
		WHERE gl_account_id = $1;
	`
	var account domain.GlAccount
	err := r.Pool.QueryRow(ctx, query, glAccountID).Scan(
		&account.GlAccountID,
		&account.GlAccountTypeID,
		&account.AccountName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find GL account %s: %w", glAccountID, err)
	}
	return &account, nil
}

// FindUomByID retrieves a unit of measure by its identifier.
func (r *PgxGlAccountRepository) FindUomByID(ctx context.Context, uomID string) (*domain.Uom, error) {
	query := `
		SELECT uom_id, uom_type_id, description
		FROM uoms
		WHERE uom_id = $1;
	`
	var uom domain.Uom
	err := r.Pool.QueryRow(ctx, query, uomID).Scan(
		&uom.UomID,
		&uom.UomTypeID,
		&uom.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find UOM %s: %w", uomID, err)
	}
	return &uom, nil
}

// ListCurrencyUoms retrieves all currency units of measure.
func (r *PgxGlAccountRepository) ListCurrencyUoms(ctx context.Context) ([]domain.Uom, error) {
	query := `
		SELECT uom_id, uom_type_id, description
		FROM uoms
		WHERE uom_type_id = $1
		ORDER BY uom_id;
	`
	rows, err := r.Pool.Query(ctx, query, domain.UomTypeCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency UOMs: %w", err)
	}
	defer rows.Close()

	uoms := []domain.Uom{}
	for rows.Next() {
		var uom domain.Uom
		if err := rows.Scan(&uom.UomID, &uom.UomTypeID, &uom.Description); err != nil {
			return nil, fmt.Errorf("failed to scan UOM row: %w", err)
		}
		uoms = append(uoms, uom)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating UOM rows: %w", err)
	}
	return uoms, nil
}
