package dto

import (
	"time"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListFinAccountTransParams holds the optional filters for the ledger
// aggregator. GlReconciliationID accepts the sentinel
// domain.GlReconciliationNotAssigned to select unreconciled transactions.
type ListFinAccountTransParams struct {
	FinAccountTransTypeID *domain.FinAccountTransTypeID   `form:"finAccountTransTypeID"`
	StatusID              *domain.FinAccountTransStatusID `form:"statusID"`
	GlReconciliationID    *string                         `form:"glReconciliationID"`
	FromTransactionDate   *time.Time                      `form:"fromTransactionDate" time_format:"2006-01-02T15:04:05Z07:00"`
	ThruTransactionDate   *time.Time                      `form:"thruTransactionDate" time_format:"2006-01-02T15:04:05Z07:00"`
	FromEntryDate         *time.Time                      `form:"fromEntryDate" time_format:"2006-01-02T15:04:05Z07:00"`
	ThruEntryDate         *time.Time                      `form:"thruEntryDate" time_format:"2006-01-02T15:04:05Z07:00"`
	OpeningBalance        *decimal.Decimal                `form:"openingBalance"`
}

// FinAccountTransTotals carries the aggregator's running totals. The four
// grand-total/count pairs cover ALL transactions of the account regardless
// of the list filter; GrandTotal covers the filtered list only. All sums
// use the signed convention (withdrawals negated).
type FinAccountTransTotals struct {
	GrandTotal        decimal.Decimal `json:"grandTotal"`
	TotalTransactions int             `json:"totalTransactions"`

	CreatedGrandTotal        decimal.Decimal `json:"createdGrandTotal"`
	TotalCreatedTransactions int             `json:"totalCreatedTransactions"`

	ApprovedGrandTotal        decimal.Decimal `json:"approvedGrandTotal"`
	TotalApprovedTransactions int             `json:"totalApprovedTransactions"`

	CreatedApprovedGrandTotal        decimal.Decimal `json:"createdApprovedGrandTotal"`
	TotalCreatedApprovedTransactions int             `json:"totalCreatedApprovedTransactions"`

	// GlReconciliationApprovedGrandTotal sums APPROVED transactions whose
	// reconciliation batch matches the requested one, plus the optional
	// caller-supplied opening balance added once.
	GlReconciliationApprovedGrandTotal decimal.Decimal `json:"glReconciliationApprovedGrandTotal"`
}

// FinAccountTransResponse is the wire shape of one financial-account
// transaction.
type FinAccountTransResponse struct {
	FinAccountTransID     string                          `json:"finAccountTransID"`
	FinAccountID          string                          `json:"finAccountID"`
	FinAccountTransTypeID domain.FinAccountTransTypeID    `json:"finAccountTransTypeID"`
	StatusID              domain.FinAccountTransStatusID  `json:"statusID"`
	Amount                decimal.Decimal                 `json:"amount"`
	TransactionDate       time.Time                       `json:"transactionDate"`
	EntryDate             time.Time                       `json:"entryDate"`
	PaymentID             *string                         `json:"paymentID,omitempty"`
	OrderID               *string                         `json:"orderID,omitempty"`
	OrderItemSeqID        *string                         `json:"orderItemSeqID,omitempty"`
	GlReconciliationID    *string                         `json:"glReconciliationID,omitempty"`
	PerformedByPartyID    *string                         `json:"performedByPartyID,omitempty"`
	ReasonEnumID          *string                         `json:"reasonEnumID,omitempty"`
	Comments              *string                         `json:"comments,omitempty"`
}

// FinAccountTransListAndTotals is the aggregator's combined response.
type FinAccountTransListAndTotals struct {
	FinAccountTrans []FinAccountTransResponse `json:"finAccountTrans"`
	Totals          FinAccountTransTotals     `json:"totals"`
}

// DepositWithdrawRequest batches a set of payments into financial-account
// transactions. With GroupInOneTransaction a single aggregate transaction
// represents the whole batch, tagged with the payment-group metadata.
type DepositWithdrawRequest struct {
	FinAccountID          string                       `json:"finAccountID" binding:"required"`
	PaymentIDs            []string                     `json:"paymentIDs" binding:"required,min=1"`
	FinAccountTransTypeID domain.FinAccountTransTypeID `json:"finAccountTransTypeID" binding:"required"`
	GroupInOneTransaction bool                         `json:"groupInOneTransaction"`
	PaymentGroupTypeID    *string                      `json:"paymentGroupTypeID,omitempty"`
	PaymentGroupName      *string                      `json:"paymentGroupName,omitempty"`
}

// DepositWithdrawResponse returns the created transaction id(s).
type DepositWithdrawResponse struct {
	FinAccountTransIDs []string `json:"finAccountTransIDs"`
}

// UpdateFinAccountTransStatusRequest advances a transaction's status.
type UpdateFinAccountTransStatusRequest struct {
	StatusID domain.FinAccountTransStatusID `json:"statusID" binding:"required"`
}

// FinAccountResponse is the wire shape of a financial account.
type FinAccountResponse struct {
	FinAccountID        string          `json:"finAccountID"`
	FinAccountTypeID    string          `json:"finAccountTypeID"`
	StatusID            string          `json:"statusID"`
	CurrencyUomID       string          `json:"currencyUomID"`
	OrganizationPartyID string          `json:"organizationPartyID"`
	OwnerPartyID        string          `json:"ownerPartyID"`
	ActualBalance       decimal.Decimal `json:"actualBalance"`
	AvailableBalance    decimal.Decimal `json:"availableBalance"`
}

// ToFinAccountTransResponse converts a domain transaction to wire shape.
func ToFinAccountTransResponse(t *domain.FinAccountTrans) FinAccountTransResponse {
	return FinAccountTransResponse{
		FinAccountTransID:     t.FinAccountTransID,
		FinAccountID:          t.FinAccountID,
		FinAccountTransTypeID: t.FinAccountTransTypeID,
		StatusID:              t.StatusID,
		Amount:                t.Amount,
		TransactionDate:       t.TransactionDate,
		EntryDate:             t.EntryDate,
		PaymentID:             t.PaymentID,
		OrderID:               t.OrderID,
		OrderItemSeqID:        t.OrderItemSeqID,
		GlReconciliationID:    t.GlReconciliationID,
		PerformedByPartyID:    t.PerformedByPartyID,
		ReasonEnumID:          t.ReasonEnumID,
		Comments:              t.Comments,
	}
}

// ToFinAccountTransResponses converts a slice of domain transactions.
func ToFinAccountTransResponses(transactions []domain.FinAccountTrans) []FinAccountTransResponse {
	responses := make([]FinAccountTransResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToFinAccountTransResponse(&transactions[i])
	}
	return responses
}

// ToFinAccountResponse converts a domain financial account to wire shape.
func ToFinAccountResponse(a *domain.FinAccount) FinAccountResponse {
	return FinAccountResponse{
		FinAccountID:        a.FinAccountID,
		FinAccountTypeID:    a.FinAccountTypeID,
		StatusID:            a.StatusID,
		CurrencyUomID:       a.CurrencyUomID,
		OrganizationPartyID: a.OrganizationPartyID,
		OwnerPartyID:        a.OwnerPartyID,
		ActualBalance:       a.ActualBalance,
		AvailableBalance:    a.AvailableBalance,
	}
}
