package accounting

import (
	"sort"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyTotals accumulates debit and credit sums for one currency.
type CurrencyTotals struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// SumEntriesByCurrency groups entries by currency and totals the debit and
// credit sides separately. Entries without a debit/credit flag are skipped;
// callers decide whether that is a violation.
func SumEntriesByCurrency(entries []domain.AcctgTransEntry) map[string]CurrencyTotals {
	totals := make(map[string]CurrencyTotals)
	for _, e := range entries {
		t := totals[e.CurrencyUomID]
		switch e.DebitCreditFlag {
		case domain.FlagDebit:
			t.DebitTotal = t.DebitTotal.Add(e.Amount)
		case domain.FlagCredit:
			t.CreditTotal = t.CreditTotal.Add(e.Amount)
		default:
			continue
		}
		totals[e.CurrencyUomID] = t
	}
	return totals
}

// FindImbalances returns one CurrencyImbalance per currency whose debit and
// credit sums differ. Equality is exact; there is no tolerance.
func FindImbalances(entries []domain.AcctgTransEntry) []domain.CurrencyImbalance {
	totals := SumEntriesByCurrency(entries)
	currencies := make([]string, 0, len(totals))
	for currency := range totals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	var imbalances []domain.CurrencyImbalance
	for _, currency := range currencies {
		t := totals[currency]
		if !t.DebitTotal.Equal(t.CreditTotal) {
			imbalances = append(imbalances, domain.CurrencyImbalance{
				CurrencyUomID: currency,
				DebitTotal:    t.DebitTotal,
				CreditTotal:   t.CreditTotal,
			})
		}
	}
	return imbalances
}

// SumSignedFinAccountTrans totals financial-account transactions using the
// ledger sign convention (withdrawals negated).
func SumSignedFinAccountTrans(transactions []domain.FinAccountTrans) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range transactions {
		sum = sum.Add(t.SignedAmount())
	}
	return sum
}
