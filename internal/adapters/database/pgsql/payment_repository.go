package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
)

// PgxPaymentRepository reads the minimal payment projection the
// deposit/withdraw orchestrator needs. Payments belong to an external
// collaborator; this repository never writes them.
type PgxPaymentRepository struct {
	BaseRepository
}

// NewPaymentRepository creates a new read-only repository for payment data.
func NewPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentReader = (*PgxPaymentRepository)(nil)

// FindPaymentsByIDs retrieves payments keyed by payment id. Missing ids are
// simply absent from the returned map.
func (r *PgxPaymentRepository) FindPaymentsByIDs(ctx context.Context, paymentIDs []string) (map[string]domain.Payment, error) {
	if len(paymentIDs) == 0 {
		return map[string]domain.Payment{}, nil
	}

	query := `
		SELECT payment_id, amount, currency_uom_id, effective_date,
		       party_id_from, party_id_to
		FROM payments
		WHERE payment_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, paymentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := make(map[string]domain.Payment, len(paymentIDs))
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(
			&p.PaymentID,
			&p.Amount,
			&p.CurrencyUomID,
			&p.EffectiveDate,
			&p.PartyIDFrom,
			&p.PartyIDTo,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments[p.PaymentID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}
