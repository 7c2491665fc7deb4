package dto

import (
	"time"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAcctgTransRequest carries the header fields for a new accounting
// transaction. The server assigns the id and the posted flag starts false.
type CreateAcctgTransRequest struct {
	AcctgTransTypeID domain.AcctgTransTypeID `json:"acctgTransTypeID" binding:"required"`
	Description      string                  `json:"description"`
	TransactionDate  time.Time               `json:"transactionDate" binding:"required"`
	GlFiscalTypeID   string                  `json:"glFiscalTypeID"`

	InvoiceID    *string `json:"invoiceID,omitempty"`
	PaymentID    *string `json:"paymentID,omitempty"`
	ShipmentID   *string `json:"shipmentID,omitempty"`
	FixedAssetID *string `json:"fixedAssetID,omitempty"`
	PartyID      *string `json:"partyID,omitempty"`
	RoleTypeID   *string `json:"roleTypeID,omitempty"`
	WorkEffortID *string `json:"workEffortID,omitempty"`
}

// UpdateAcctgTransRequest updates header fields of an unposted transaction.
// Nil fields are left unchanged.
type UpdateAcctgTransRequest struct {
	AcctgTransTypeID *domain.AcctgTransTypeID `json:"acctgTransTypeID,omitempty"`
	Description      *string                  `json:"description,omitempty"`
	TransactionDate  *time.Time               `json:"transactionDate,omitempty"`
	GlFiscalTypeID   *string                  `json:"glFiscalTypeID,omitempty"`

	InvoiceID    *string `json:"invoiceID,omitempty"`
	PaymentID    *string `json:"paymentID,omitempty"`
	ShipmentID   *string `json:"shipmentID,omitempty"`
	FixedAssetID *string `json:"fixedAssetID,omitempty"`
	PartyID      *string `json:"partyID,omitempty"`
	RoleTypeID   *string `json:"roleTypeID,omitempty"`
	WorkEffortID *string `json:"workEffortID,omitempty"`
}

// CreateAcctgTransEntryRequest appends one entry to an existing
// transaction. The GL account type is derived server-side; clients never
// supply it.
type CreateAcctgTransEntryRequest struct {
	AcctgTransID    string                 `json:"acctgTransID" binding:"required"`
	GlAccountID     string                 `json:"glAccountID" binding:"required"`
	DebitCreditFlag domain.DebitCreditFlag `json:"debitCreditFlag" binding:"omitempty,debitcreditflag"`
	Amount          decimal.Decimal        `json:"amount"`
	CurrencyUomID   string                 `json:"currencyUomID" binding:"required"`

	OrigAmount        *decimal.Decimal `json:"origAmount,omitempty"`
	OrigCurrencyUomID *string          `json:"origCurrencyUomID,omitempty"`
	PartyID           *string          `json:"partyID,omitempty"`
	ProductID         *string          `json:"productID,omitempty"`
	InventoryItemID   *string          `json:"inventoryItemID,omitempty"`
	DueDate           *time.Time       `json:"dueDate,omitempty"`
	GroupID           *string          `json:"groupID,omitempty"`
	ReconcileStatusID *string          `json:"reconcileStatusID,omitempty"`
	SettlementTermID  *string          `json:"settlementTermID,omitempty"`
	IsSummary         bool             `json:"isSummary"`
}

// QuickCreateAcctgTransRequest is the common-case shorthand: one header
// plus exactly two entries, one debit and one credit on the given accounts
// for the same amount, balanced by construction.
type QuickCreateAcctgTransRequest struct {
	AcctgTransTypeID domain.AcctgTransTypeID `json:"acctgTransTypeID" binding:"required"`
	Description      string                  `json:"description"`
	TransactionDate  time.Time               `json:"transactionDate" binding:"required"`
	GlFiscalTypeID   string                  `json:"glFiscalTypeID"`

	DebitGlAccountID  string          `json:"debitGlAccountID" binding:"required"`
	CreditGlAccountID string          `json:"creditGlAccountID" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	CurrencyUomID     string          `json:"currencyUomID" binding:"required"`

	InvoiceID    *string `json:"invoiceID,omitempty"`
	PaymentID    *string `json:"paymentID,omitempty"`
	FixedAssetID *string `json:"fixedAssetID,omitempty"`
	PartyID      *string `json:"partyID,omitempty"`
	ProductID    *string `json:"productID,omitempty"`
}

// ListAcctgTransParams holds pagination parameters for listing transaction
// headers.
type ListAcctgTransParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// AcctgTransEntryResponse is the wire shape of one ledger entry.
type AcctgTransEntryResponse struct {
	AcctgTransID         string                 `json:"acctgTransID"`
	AcctgTransEntrySeqID int                    `json:"acctgTransEntrySeqID"`
	GlAccountID          string                 `json:"glAccountID"`
	GlAccountTypeID      domain.GlAccountTypeID `json:"glAccountTypeID"`
	DebitCreditFlag      domain.DebitCreditFlag `json:"debitCreditFlag"`
	Amount               decimal.Decimal        `json:"amount"`
	CurrencyUomID        string                 `json:"currencyUomID"`
	OrigAmount           *decimal.Decimal       `json:"origAmount,omitempty"`
	OrigCurrencyUomID    *string                `json:"origCurrencyUomID,omitempty"`
	PartyID              *string                `json:"partyID,omitempty"`
	ProductID            *string                `json:"productID,omitempty"`
	IsSummary            bool                   `json:"isSummary"`
	CreatedAt            time.Time              `json:"createdAt"`
}

// AcctgTransResponse is the wire shape of a transaction header, optionally
// including its entries.
type AcctgTransResponse struct {
	AcctgTransID     string                    `json:"acctgTransID"`
	AcctgTransTypeID domain.AcctgTransTypeID   `json:"acctgTransTypeID"`
	Description      string                    `json:"description"`
	TransactionDate  time.Time                 `json:"transactionDate"`
	GlFiscalTypeID   string                    `json:"glFiscalTypeID"`
	IsPosted         bool                      `json:"isPosted"`
	PostedDate       *time.Time                `json:"postedDate,omitempty"`
	InvoiceID        *string                   `json:"invoiceID,omitempty"`
	PaymentID        *string                   `json:"paymentID,omitempty"`
	ShipmentID       *string                   `json:"shipmentID,omitempty"`
	FixedAssetID     *string                   `json:"fixedAssetID,omitempty"`
	PartyID          *string                   `json:"partyID,omitempty"`
	RoleTypeID       *string                   `json:"roleTypeID,omitempty"`
	WorkEffortID     *string                   `json:"workEffortID,omitempty"`
	CreatedAt        time.Time                 `json:"createdAt"`
	CreatedBy        string                    `json:"createdBy"`
	Entries          []AcctgTransEntryResponse `json:"entries,omitempty"`
}

// ListAcctgTransResponse is a page of transaction headers.
type ListAcctgTransResponse struct {
	AcctgTrans []AcctgTransResponse `json:"acctgTrans"`
	NextToken  *string              `json:"nextToken,omitempty"`
}

// PostAcctgTransResponse reports the outcome of a posting run. Messages is
// empty when the transaction posted (or would post, in verify-only mode).
type PostAcctgTransResponse struct {
	AcctgTransID string     `json:"acctgTransID"`
	VerifyOnly   bool       `json:"verifyOnly"`
	Posted       bool       `json:"posted"`
	PostedDate   *time.Time `json:"postedDate,omitempty"`
	Messages     []string   `json:"messages"`
}

// ToAcctgTransEntryResponse converts a domain entry to its wire shape.
func ToAcctgTransEntryResponse(e *domain.AcctgTransEntry) AcctgTransEntryResponse {
	return AcctgTransEntryResponse{
		AcctgTransID:         e.AcctgTransID,
		AcctgTransEntrySeqID: e.AcctgTransEntrySeqID,
		GlAccountID:          e.GlAccountID,
		GlAccountTypeID:      e.GlAccountTypeID,
		DebitCreditFlag:      e.DebitCreditFlag,
		Amount:               e.Amount,
		CurrencyUomID:        e.CurrencyUomID,
		OrigAmount:           e.OrigAmount,
		OrigCurrencyUomID:    e.OrigCurrencyUomID,
		PartyID:              e.PartyID,
		ProductID:            e.ProductID,
		IsSummary:            e.IsSummary,
		CreatedAt:            e.CreatedAt,
	}
}

// ToAcctgTransResponse converts a domain transaction to its wire shape.
func ToAcctgTransResponse(t *domain.AcctgTrans) AcctgTransResponse {
	resp := AcctgTransResponse{
		AcctgTransID:     t.AcctgTransID,
		AcctgTransTypeID: t.AcctgTransTypeID,
		Description:      t.Description,
		TransactionDate:  t.TransactionDate,
		GlFiscalTypeID:   t.GlFiscalTypeID,
		IsPosted:         t.IsPosted,
		PostedDate:       t.PostedDate,
		InvoiceID:        t.InvoiceID,
		PaymentID:        t.PaymentID,
		ShipmentID:       t.ShipmentID,
		FixedAssetID:     t.FixedAssetID,
		PartyID:          t.PartyID,
		RoleTypeID:       t.RoleTypeID,
		WorkEffortID:     t.WorkEffortID,
		CreatedAt:        t.CreatedAt,
		CreatedBy:        t.CreatedBy,
	}
	if len(t.Entries) > 0 {
		resp.Entries = make([]AcctgTransEntryResponse, len(t.Entries))
		for i := range t.Entries {
			resp.Entries[i] = ToAcctgTransEntryResponse(&t.Entries[i])
		}
	}
	return resp
}

// ToPostAcctgTransResponse converts a posting result to its wire shape.
func ToPostAcctgTransResponse(r *domain.PostingResult) PostAcctgTransResponse {
	messages := r.Messages
	if messages == nil {
		messages = []string{}
	}
	return PostAcctgTransResponse{
		AcctgTransID: r.AcctgTransID,
		VerifyOnly:   r.VerifyOnly,
		Posted:       r.Posted,
		PostedDate:   r.PostedDate,
		Messages:     messages,
	}
}
