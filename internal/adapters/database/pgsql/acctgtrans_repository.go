package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EmadRadwan/Contracts-sub015/internal/apperrors"
	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	portsrepo "github.com/EmadRadwan/Contracts-sub015/internal/core/ports/repositories"
	"github.com/EmadRadwan/Contracts-sub015/internal/utils/pagination"
)

// PgxAcctgTransRepository persists accounting transaction headers and their
// entries. Entry sequence ids are assigned here, under a row lock on the
// owning header, so concurrent appends can not collide.
type PgxAcctgTransRepository struct {
	BaseRepository
}

// NewAcctgTransRepository creates a new repository for accounting
// transaction data.
func NewAcctgTransRepository(pool *pgxpool.Pool) *PgxAcctgTransRepository {
	return &PgxAcctgTransRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AcctgTransRepository = (*PgxAcctgTransRepository)(nil)

const acctgTransColumns = `
	acctg_trans_id, acctg_trans_type_id, description, transaction_date,
	gl_fiscal_type_id, is_posted, posted_date,
	invoice_id, payment_id, shipment_id, fixed_asset_id,
	party_id, role_type_id, work_effort_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAcctgTrans(row pgx.Row) (*domain.AcctgTrans, error) {
	var t domain.AcctgTrans
	err := row.Scan(
		&t.AcctgTransID,
		&t.AcctgTransTypeID,
		&t.Description,
		&t.TransactionDate,
		&t.GlFiscalTypeID,
		&t.IsPosted,
		&t.PostedDate,
		&t.InvoiceID,
		&t.PaymentID,
		&t.ShipmentID,
		&t.FixedAssetID,
		&t.PartyID,
		&t.RoleTypeID,
		&t.WorkEffortID,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveAcctgTrans persists a header together with its initial entries inside
// one database transaction.
func (r *PgxAcctgTransRepository) SaveAcctgTrans(ctx context.Context, trans domain.AcctgTrans, entries []domain.AcctgTransEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO acctg_trans (` + acctgTransColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, headerQuery,
		trans.AcctgTransID,
		trans.AcctgTransTypeID,
		trans.Description,
		trans.TransactionDate,
		trans.GlFiscalTypeID,
		trans.IsPosted,
		trans.PostedDate,
		trans.InvoiceID,
		trans.PaymentID,
		trans.ShipmentID,
		trans.FixedAssetID,
		trans.PartyID,
		trans.RoleTypeID,
		trans.WorkEffortID,
		trans.CreatedAt,
		trans.CreatedBy,
		trans.LastUpdatedAt,
		trans.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert accounting transaction %s: %w", trans.AcctgTransID, err)
	}

	if len(entries) > 0 {
		batch := &pgx.Batch{}
		for _, e := range entries {
			queueEntryInsert(batch, e)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to insert entries for transaction %s: %w", trans.AcctgTransID, err)
		}
	}

	return r.Commit(ctx, tx)
}

const entryInsertQuery = `
	INSERT INTO acctg_trans_entries (
		acctg_trans_id, acctg_trans_entry_seq_id, gl_account_id, gl_account_type_id,
		debit_credit_flag, amount, currency_uom_id, orig_amount, orig_currency_uom_id,
		party_id, product_id, inventory_item_id, due_date, group_id,
		reconcile_status_id, settlement_term_id, is_summary,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
`

func queueEntryInsert(batch *pgx.Batch, e domain.AcctgTransEntry) {
	batch.Queue(entryInsertQuery,
		e.AcctgTransID,
		e.AcctgTransEntrySeqID,
		e.GlAccountID,
		e.GlAccountTypeID,
		e.DebitCreditFlag,
		e.Amount,
		e.CurrencyUomID,
		e.OrigAmount,
		e.OrigCurrencyUomID,
		e.PartyID,
		e.ProductID,
		e.InventoryItemID,
		e.DueDate,
		e.GroupID,
		e.ReconcileStatusID,
		e.SettlementTermID,
		e.IsSummary,
		e.CreatedAt,
		e.CreatedBy,
		e.LastUpdatedAt,
		e.LastUpdatedBy,
	)
}

// FindAcctgTransByID retrieves a transaction header by its identifier.
func (r *PgxAcctgTransRepository) FindAcctgTransByID(ctx context.Context, acctgTransID string) (*domain.AcctgTrans, error) {
	query := `SELECT ` + acctgTransColumns + ` FROM acctg_trans WHERE acctg_trans_id = $1;`
	trans, err := scanAcctgTrans(r.Pool.QueryRow(ctx, query, acctgTransID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find accounting transaction %s: %w", acctgTransID, err)
	}
	return trans, nil
}

// FindEntriesByAcctgTransID retrieves all entries of a transaction ordered
// by sequence id.
func (r *PgxAcctgTransRepository) FindEntriesByAcctgTransID(ctx context.Context, acctgTransID string) ([]domain.AcctgTransEntry, error) {
	query := `
		SELECT acctg_trans_id, acctg_trans_entry_seq_id, gl_account_id, gl_account_type_id,
		       debit_credit_flag, amount, currency_uom_id, orig_amount, orig_currency_uom_id,
		       party_id, product_id, inventory_item_id, due_date, group_id,
		       reconcile_status_id, settlement_term_id, is_summary,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM acctg_trans_entries
		WHERE acctg_trans_id = $1
		ORDER BY acctg_trans_entry_seq_id;
	`
	rows, err := r.Pool.Query(ctx, query, acctgTransID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for transaction %s: %w", acctgTransID, err)
	}
	defer rows.Close()

	entries := []domain.AcctgTransEntry{}
	for rows.Next() {
		var e domain.AcctgTransEntry
		err := rows.Scan(
			&e.AcctgTransID,
			&e.AcctgTransEntrySeqID,
			&e.GlAccountID,
			&e.GlAccountTypeID,
			&e.DebitCreditFlag,
			&e.Amount,
			&e.CurrencyUomID,
			&e.OrigAmount,
			&e.OrigCurrencyUomID,
			&e.PartyID,
			&e.ProductID,
			&e.InventoryItemID,
			&e.DueDate,
			&e.GroupID,
			&e.ReconcileStatusID,
			&e.SettlementTermID,
			&e.IsSummary,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for transaction %s: %w", acctgTransID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for transaction %s: %w", acctgTransID, err)
	}
	return entries, nil
}

// ListAcctgTrans retrieves a paginated list of transaction headers using
// token-based pagination ordered by transaction date descending with
// creation time as tie-breaker.
func (r *PgxAcctgTransRepository) ListAcctgTrans(ctx context.Context, limit int, nextToken *string) ([]domain.AcctgTrans, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + acctgTransColumns + ` FROM acctg_trans`
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastTransactionDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("invalid nextToken: %w: %w", decodeErr, apperrors.ErrValidation)
		}
		cursorClause := `WHERE (transaction_date, created_at) < ($1, $2)`
		args = append(args, lastTransactionDate, lastCreatedAt)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query accounting transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.AcctgTrans, 0, fetchLimit)
	for rows.Next() {
		trans, scanErr := scanAcctgTrans(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan accounting transaction row: %w", scanErr)
		}
		transactions = append(transactions, *trans)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating accounting transaction rows: %w", err)
	}

	var nextTokenVal *string
	if len(transactions) > limit {
		last := transactions[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		nextTokenVal = &token
		transactions = transactions[:limit]
	}
	return transactions, nextTokenVal, nil
}

// UpdateAcctgTrans updates the mutable header fields of an unposted
// transaction. The is_posted guard in the WHERE clause makes a posted
// header immutable at the database level.
func (r *PgxAcctgTransRepository) UpdateAcctgTrans(ctx context.Context, trans domain.AcctgTrans) error {
	query := `
		UPDATE acctg_trans
		SET acctg_trans_type_id = $2,
		    description = $3,
		    transaction_date = $4,
		    invoice_id = $5,
		    payment_id = $6,
		    shipment_id = $7,
		    fixed_asset_id = $8,
		    party_id = $9,
		    role_type_id = $10,
		    work_effort_id = $11,
		    last_updated_at = $12,
		    last_updated_by = $13
		WHERE acctg_trans_id = $1 AND is_posted = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		trans.AcctgTransID,
		trans.AcctgTransTypeID,
		trans.Description,
		trans.TransactionDate,
		trans.InvoiceID,
		trans.PaymentID,
		trans.ShipmentID,
		trans.FixedAssetID,
		trans.PartyID,
		trans.RoleTypeID,
		trans.WorkEffortID,
		trans.LastUpdatedAt,
		trans.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update accounting transaction %s: %w", trans.AcctgTransID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, trans.AcctgTransID)
	}
	return nil
}

// AppendEntry inserts one entry, assigning the next sequence id under a row
// lock on the owning header so two concurrent appends get distinct ids.
func (r *PgxAcctgTransRepository) AppendEntry(ctx context.Context, entry domain.AcctgTransEntry) (*domain.AcctgTransEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var isPosted bool
	lockQuery := `SELECT is_posted FROM acctg_trans WHERE acctg_trans_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, entry.AcctgTransID).Scan(&isPosted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", entry.AcctgTransID, err)
	}
	if isPosted {
		return nil, fmt.Errorf("transaction %s is posted: %w", entry.AcctgTransID, apperrors.ErrConflict)
	}

	seqQuery := `
		SELECT COALESCE(MAX(acctg_trans_entry_seq_id), 0) + 1
		FROM acctg_trans_entries
		WHERE acctg_trans_id = $1;
	`
	if err := tx.QueryRow(ctx, seqQuery, entry.AcctgTransID).Scan(&entry.AcctgTransEntrySeqID); err != nil {
		return nil, fmt.Errorf("failed to assign entry sequence for transaction %s: %w", entry.AcctgTransID, err)
	}

	batch := &pgx.Batch{}
	queueEntryInsert(batch, entry)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to insert entry for transaction %s: %w", entry.AcctgTransID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes a single entry by composite key. The owning header is
// locked first so the posted check and the delete see the same state.
func (r *PgxAcctgTransRepository) DeleteEntry(ctx context.Context, acctgTransID string, acctgTransEntrySeqID int) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var isPosted bool
	lockQuery := `SELECT is_posted FROM acctg_trans WHERE acctg_trans_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, acctgTransID).Scan(&isPosted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock transaction %s: %w", acctgTransID, err)
	}
	if isPosted {
		return fmt.Errorf("transaction %s is posted: %w", acctgTransID, apperrors.ErrConflict)
	}

	deleteQuery := `
		DELETE FROM acctg_trans_entries
		WHERE acctg_trans_id = $1 AND acctg_trans_entry_seq_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, deleteQuery, acctgTransID, acctgTransEntrySeqID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %d of transaction %s: %w", acctgTransEntrySeqID, acctgTransID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// MarkPosted flips the posted flag with a compare-and-set: only a row still
// unposted is updated. Zero affected rows means either the transaction does
// not exist or a concurrent post already won the race.
func (r *PgxAcctgTransRepository) MarkPosted(ctx context.Context, acctgTransID string, postedDate time.Time, updatedBy string) error {
	query := `
		UPDATE acctg_trans
		SET is_posted = TRUE,
		    posted_date = $2,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE acctg_trans_id = $1 AND is_posted = FALSE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, acctgTransID, postedDate, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s posted: %w", acctgTransID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, acctgTransID)
	}
	return nil
}

// classifyMissedUpdate distinguishes a missing row from a posted one after
// a guarded update matched nothing.
func (r *PgxAcctgTransRepository) classifyMissedUpdate(ctx context.Context, acctgTransID string) error {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM acctg_trans WHERE acctg_trans_id = $1);`
	if err := r.Pool.QueryRow(ctx, query, acctgTransID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check existence of transaction %s: %w", acctgTransID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("transaction %s is posted: %w", acctgTransID, apperrors.ErrConflict)
}
