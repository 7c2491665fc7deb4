package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinAccountTransTypeID enumerates the kinds of financial-account
// transactions.
type FinAccountTransTypeID string

const (
	FinAccountTransDeposit    FinAccountTransTypeID = "DEPOSIT"
	FinAccountTransWithdrawal FinAccountTransTypeID = "WITHDRAWAL"
	FinAccountTransAdjustment FinAccountTransTypeID = "ADJUSTMENT"
)

// FinAccountTransStatusID is the lifecycle status of a financial-account
// transaction: CREATED advances to APPROVED (linear, no regression) or to
// CANCELED (terminal).
type FinAccountTransStatusID string

const (
	FinAccountTransCreated  FinAccountTransStatusID = "FINACT_TRNS_CREATED"
	FinAccountTransApproved FinAccountTransStatusID = "FINACT_TRNS_APPROVED"
	FinAccountTransCanceled FinAccountTransStatusID = "FINACT_TRNS_CANCELED"
)

// GlReconciliationNotAssigned is the sentinel filter value selecting
// transactions that have no GL reconciliation batch assigned yet.
const GlReconciliationNotAssigned = "_NA_"

// FinAccount is a sub-ledger account (store credit, gift card, escrow)
// tracked independently of the general ledger. The cached balances are
// derived; the authoritative state is the transaction ledger.
type FinAccount struct {
	FinAccountID       string          `json:"finAccountID"`
	FinAccountTypeID   string          `json:"finAccountTypeID"`
	StatusID           string          `json:"statusID"`
	CurrencyUomID      string          `json:"currencyUomID"`
	OrganizationPartyID string         `json:"organizationPartyID"`
	OwnerPartyID       string          `json:"ownerPartyID"`
	ReplenishLevel     decimal.Decimal `json:"replenishLevel"`
	ActualBalance      decimal.Decimal `json:"actualBalance"`    // Derived cache
	AvailableBalance   decimal.Decimal `json:"availableBalance"` // Derived cache
	AuditFields
}

// FinAccountTrans is one deposit/withdrawal/adjustment event against a
// financial account. Once a GL reconciliation batch is assigned the
// transaction is considered settled for aggregation tied to that batch.
type FinAccountTrans struct {
	FinAccountTransID     string                  `json:"finAccountTransID"` // Primary Key (UUID)
	FinAccountID          string                  `json:"finAccountID"`
	FinAccountTransTypeID FinAccountTransTypeID   `json:"finAccountTransTypeID"`
	StatusID              FinAccountTransStatusID `json:"statusID"`
	Amount                decimal.Decimal         `json:"amount"`
	TransactionDate       time.Time               `json:"transactionDate"`
	EntryDate             time.Time               `json:"entryDate"`

	PaymentID         *string `json:"paymentID,omitempty"`
	OrderID           *string `json:"orderID,omitempty"`
	OrderItemSeqID    *string `json:"orderItemSeqID,omitempty"`
	GlReconciliationID *string `json:"glReconciliationID,omitempty"` // nil = not yet reconciled
	PerformedByPartyID *string `json:"performedByPartyID,omitempty"`
	ReasonEnumID      *string `json:"reasonEnumID,omitempty"`
	Comments          *string `json:"comments,omitempty"`

	AuditFields
}

// SignedAmount applies the ledger sign convention: withdrawal-type
// transactions contribute their amount negated, all other types positively.
func (t FinAccountTrans) SignedAmount() decimal.Decimal {
	if t.FinAccountTransTypeID == FinAccountTransWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}

// CanTransitionTo reports whether the status may advance to target.
// Transitions only move forward: CREATED->APPROVED, CREATED->CANCELED.
func (s FinAccountTransStatusID) CanTransitionTo(target FinAccountTransStatusID) bool {
	switch s {
	case FinAccountTransCreated:
		return target == FinAccountTransApproved || target == FinAccountTransCanceled
	default:
		return false
	}
}

// Payment is the minimal projection of a payment the deposit/withdraw
// orchestrator needs. Payments are owned by an external collaborator.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyUomID string          `json:"currencyUomID"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	PartyIDFrom   *string         `json:"partyIDFrom,omitempty"`
	PartyIDTo     *string         `json:"partyIDTo,omitempty"`
}
