package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
)

// PgxFinAccountRepository persists financial accounts and their transaction
// ledger. The cached account balances are recomputed from the ledger inside
// the same database transaction that approves a ledger row.
type PgxFinAccountRepository struct {
	BaseRepository
}

// NewFinAccountRepository creates a new repository for financial account data.
func NewFinAccountRepository(pool *pgxpool.Pool) *PgxFinAccountRepository {
	return &PgxFinAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinAccountRepository = (*PgxFinAccountRepository)(nil)

// FindFinAccountByID retrieves a financial account by its identifier.
func (r *PgxFinAccountRepository) FindFinAccountByID(ctx context.Context, finAccountID string) (*domain.FinAccount, error) {
	query := `
		SELECT fin_account_id, fin_account_type_id, status_id, currency_uom_id,
		       organization_party_id, owner_party_id, replenish_level,
		       actual_balance, available_balance,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM fin_accounts
		WHERE fin_account_id = $1;
	`
	var a domain.FinAccount
	err := r.Pool.QueryRow(ctx, query, finAccountID).Scan(
		&a.FinAccountID,
		&a.FinAccountTypeID,
		&a.StatusID,
		&a.CurrencyUomID,
		&a.OrganizationPartyID,
		&a.OwnerPartyID,
		&a.ReplenishLevel,
		&a.ActualBalance,
		&a.AvailableBalance,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financial account %s: %w", finAccountID, err)
	}
	return &a, nil
}

const finAccountTransColumns = `
	fin_account_trans_id, fin_account_id, fin_account_trans_type_id, status_id,
	amount, transaction_date, entry_date,
	payment_id, order_id, order_item_seq_id, gl_reconciliation_id,
	performed_by_party_id, reason_enum_id, comments,
	created_at, created_by, last_updated_at, last_updated_by`

// FindFinAccountTransByFinAccountID retrieves every transaction of the
// account ordered by transaction date then entry date.
func (r *PgxFinAccountRepository) FindFinAccountTransByFinAccountID(ctx context.Context, finAccountID string) ([]domain.FinAccountTrans, error) {
	query := `
		SELECT ` + finAccountTransColumns + `
		FROM fin_account_trans
		WHERE fin_account_id = $1
		ORDER BY transaction_date, entry_date, fin_account_trans_id;
	`
	rows, err := r.Pool.Query(ctx, query, finAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for financial account %s: %w", finAccountID, err)
	}
	defer rows.Close()

	transactions := []domain.FinAccountTrans{}
	for rows.Next() {
		var t domain.FinAccountTrans
		err := rows.Scan(
			&t.FinAccountTransID,
			&t.FinAccountID,
			&t.FinAccountTransTypeID,
			&t.StatusID,
			&t.Amount,
			&t.TransactionDate,
			&t.EntryDate,
			&t.PaymentID,
			&t.OrderID,
			&t.OrderItemSeqID,
			&t.GlReconciliationID,
			&t.PerformedByPartyID,
			&t.ReasonEnumID,
			&t.Comments,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for financial account %s: %w", finAccountID, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows for financial account %s: %w", finAccountID, err)
	}
	return transactions, nil
}

// SaveFinAccountTransBatch persists the whole batch inside one database
// transaction. Partial application is not a valid outcome.
func (r *PgxFinAccountRepository) SaveFinAccountTransBatch(ctx context.Context, transactions []domain.FinAccountTrans) error {
	if len(transactions) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO fin_account_trans (` + finAccountTransColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	batch := &pgx.Batch{}
	for _, t := range transactions {
		batch.Queue(insertQuery,
			t.FinAccountTransID,
			t.FinAccountID,
			t.FinAccountTransTypeID,
			t.StatusID,
			t.Amount,
			t.TransactionDate,
			t.EntryDate,
			t.PaymentID,
			t.OrderID,
			t.OrderItemSeqID,
			t.GlReconciliationID,
			t.PerformedByPartyID,
			t.ReasonEnumID,
			t.Comments,
			t.CreatedAt,
			t.CreatedBy,
			t.LastUpdatedAt,
			t.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert financial account transaction batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateFinAccountTransStatus advances a transaction's status with a
// compare-and-set on the current status. When the target is APPROVED the
// owning account's cached balances are recomputed from the approved ledger
// rows inside the same database transaction.
func (r *PgxFinAccountRepository) UpdateFinAccountTransStatus(ctx context.Context, finAccountTransID string, current, target domain.FinAccountTransStatusID, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE fin_account_trans
		SET status_id = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE fin_account_trans_id = $1 AND status_id = $2
		RETURNING fin_account_id;
	`
	var finAccountID string
	err = tx.QueryRow(ctx, updateQuery, finAccountTransID, current, target, updatedAt, updatedBy).Scan(&finAccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.classifyMissedStatusUpdate(ctx, finAccountTransID)
		}
		return fmt.Errorf("failed to update status of financial account transaction %s: %w", finAccountTransID, err)
	}

	if target == domain.FinAccountTransApproved {
		// Recompute the cached balances from approved rows, withdrawals
		// negated.
		balanceQuery := `
			UPDATE fin_accounts
			SET actual_balance = sums.total,
			    available_balance = sums.total,
			    last_updated_at = $2,
			    last_updated_by = $3
			FROM (
				SELECT COALESCE(SUM(
					CASE WHEN fin_account_trans_type_id = 'WITHDRAWAL' THEN -amount ELSE amount END
				), 0) AS total
				FROM fin_account_trans
				WHERE fin_account_id = $1 AND status_id = 'FINACT_TRNS_APPROVED'
			) AS sums
			WHERE fin_account_id = $1;
		`
		if _, err := tx.Exec(ctx, balanceQuery, finAccountID, updatedAt, updatedBy); err != nil {
			return fmt.Errorf("failed to refresh balances of financial account %s: %w", finAccountID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// classifyMissedStatusUpdate distinguishes a missing row from a status
// mismatch after a compare-and-set matched nothing.
func (r *PgxFinAccountRepository) classifyMissedStatusUpdate(ctx context.Context, finAccountTransID string) error {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM fin_account_trans WHERE fin_account_trans_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, finAccountTransID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existence of financial account transaction %s: %w", finAccountTransID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("financial account transaction %s is not in the expected status: %w", finAccountTransID, apperrors.ErrConflict)
}
