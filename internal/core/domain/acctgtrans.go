package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AcctgTransTypeID enumerates the kinds of accounting transactions the
// ledger accepts.
type AcctgTransTypeID string

const (
	AcctgTransTypeSales           AcctgTransTypeID = "SALES"
	AcctgTransTypePurchaseInvoice AcctgTransTypeID = "PURCHASE_INVOICE"
	AcctgTransTypePaymentAppl     AcctgTransTypeID = "PAYMENT_APPL"
	AcctgTransTypeIncomingPayment AcctgTransTypeID = "INCOMING_PAYMENT"
	AcctgTransTypeOutgoingPayment AcctgTransTypeID = "OUTGOING_PAYMENT"
	AcctgTransTypeInventory       AcctgTransTypeID = "INVENTORY"
	AcctgTransTypeDepreciation    AcctgTransTypeID = "DEPRECIATION"
	AcctgTransTypePeriodClosing   AcctgTransTypeID = "PERIOD_CLOSING"
	AcctgTransTypeInternal        AcctgTransTypeID = "INTERNAL"
	AcctgTransTypeOther           AcctgTransTypeID = "OTHER"
)

// ValidAcctgTransType reports whether the given type is one of the fixed
// enumerated transaction types.
func ValidAcctgTransType(t AcctgTransTypeID) bool {
	switch t {
	case AcctgTransTypeSales, AcctgTransTypePurchaseInvoice, AcctgTransTypePaymentAppl,
		AcctgTransTypeIncomingPayment, AcctgTransTypeOutgoingPayment, AcctgTransTypeInventory,
		AcctgTransTypeDepreciation, AcctgTransTypePeriodClosing, AcctgTransTypeInternal,
		AcctgTransTypeOther:
		return true
	}
	return false
}

// GlFiscalTypeActual is the default fiscal-type tag for real transactions.
const GlFiscalTypeActual = "ACTUAL"

// DebitCreditFlag classifies an entry's effect direction.
// Balance requires debit total = credit total per currency.
type DebitCreditFlag string

const (
	FlagDebit  DebitCreditFlag = "D"
	FlagCredit DebitCreditFlag = "C"
)

// AcctgTrans is a general-ledger event header grouping one or more balanced
// entries. Once posted the header's core fields and its entries are frozen;
// transactions are never deleted, only referenced historically.
type AcctgTrans struct {
	AcctgTransID     string           `json:"acctgTransID"` // Primary Key (UUID)
	AcctgTransTypeID AcctgTransTypeID `json:"acctgTransTypeID"`
	Description      string           `json:"description"`
	TransactionDate  time.Time        `json:"transactionDate"`
	GlFiscalTypeID   string           `json:"glFiscalTypeID"` // Default: ACTUAL
	IsPosted         bool             `json:"isPosted"`
	PostedDate       *time.Time       `json:"postedDate,omitempty"` // Set only on posting, immutable once set

	// Optional correlation keys to external collaborators. Never validated
	// for existence by this core beyond presence.
	InvoiceID    *string `json:"invoiceID,omitempty"`
	PaymentID    *string `json:"paymentID,omitempty"`
	ShipmentID   *string `json:"shipmentID,omitempty"`
	FixedAssetID *string `json:"fixedAssetID,omitempty"`
	PartyID      *string `json:"partyID,omitempty"`
	RoleTypeID   *string `json:"roleTypeID,omitempty"`
	WorkEffortID *string `json:"workEffortID,omitempty"`

	AuditFields

	// Entries are loaded separately and populated on demand.
	Entries []AcctgTransEntry `json:"entries,omitempty"`
}

// AcctgTransEntry is one debit or credit line item belonging to exactly one
// accounting transaction and one GL account. Keyed by (AcctgTransID,
// AcctgTransEntrySeqID); the sequence is assigned by the repository and is
// monotonically increasing per transaction.
type AcctgTransEntry struct {
	AcctgTransID        string          `json:"acctgTransID"`
	AcctgTransEntrySeqID int            `json:"acctgTransEntrySeqID"`
	GlAccountID         string          `json:"glAccountID"`
	GlAccountTypeID     GlAccountTypeID `json:"glAccountTypeID"` // Derived via resolver, never client-supplied
	DebitCreditFlag     DebitCreditFlag `json:"debitCreditFlag"` // "D" or "C"; empty only while not finalized
	Amount              decimal.Decimal `json:"amount"`          // Non-negative; zero = memo line
	CurrencyUomID       string          `json:"currencyUomID"`
	OrigAmount          *decimal.Decimal `json:"origAmount,omitempty"` // Pre-conversion capture
	OrigCurrencyUomID   *string          `json:"origCurrencyUomID,omitempty"`

	PartyID          *string    `json:"partyID,omitempty"`
	ProductID        *string    `json:"productID,omitempty"`
	InventoryItemID  *string    `json:"inventoryItemID,omitempty"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	GroupID          *string    `json:"groupID,omitempty"`
	ReconcileStatusID *string   `json:"reconcileStatusID,omitempty"`
	SettlementTermID *string    `json:"settlementTermID,omitempty"`
	IsSummary        bool       `json:"isSummary"`

	AuditFields
}
