package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyImbalance reports a per-currency debit/credit mismatch found
// while verifying an accounting transaction.
type CurrencyImbalance struct {
	CurrencyUomID string          `json:"currencyUomID"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
}

// Message renders the imbalance as a human-readable posting message.
func (ci CurrencyImbalance) Message() string {
	return fmt.Sprintf("debits (%s) do not equal credits (%s) for currency %s",
		ci.DebitTotal.String(), ci.CreditTotal.String(), ci.CurrencyUomID)
}

// PostingResult is the outcome of running the posting algorithm. Business
// rule failures (imbalance, unfinalized entries) are carried here as
// messages rather than as errors; an empty message list means the
// transaction posted, or would post in verify-only mode.
type PostingResult struct {
	AcctgTransID string              `json:"acctgTransID"`
	VerifyOnly   bool                `json:"verifyOnly"`
	Posted       bool                `json:"posted"`
	PostedDate   *time.Time          `json:"postedDate,omitempty"`
	Imbalances   []CurrencyImbalance `json:"imbalances,omitempty"`
	Messages     []string            `json:"messages"`
}

// Succeeded reports whether the posting run found no violations.
func (r *PostingResult) Succeeded() bool {
	return len(r.Messages) == 0
}
