package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/EmadRadwan/Contracts-sub015/internal/core/domain"
)

func TestFinAccountTrans_SignedAmount(t *testing.T) {
	tests := []struct {
		name  string
		trans domain.FinAccountTrans
		want  decimal.Decimal
	}{
		{
			name: "deposit contributes positively",
			trans: domain.FinAccountTrans{
				FinAccountTransTypeID: domain.FinAccountTransDeposit,
				Amount:                decimal.NewFromInt(100),
			},
			want: decimal.NewFromInt(100),
		},
		{
			name: "withdrawal is negated",
			trans: domain.FinAccountTrans{
				FinAccountTransTypeID: domain.FinAccountTransWithdrawal,
				Amount:                decimal.NewFromInt(30),
			},
			want: decimal.NewFromInt(-30),
		},
		{
			name: "adjustment contributes positively",
			trans: domain.FinAccountTrans{
				FinAccountTransTypeID: domain.FinAccountTransAdjustment,
				Amount:                decimal.NewFromFloat(12.5),
			},
			want: decimal.NewFromFloat(12.5),
		},
		{
			name: "zero amount stays zero regardless of type",
			trans: domain.FinAccountTrans{
				FinAccountTransTypeID: domain.FinAccountTransWithdrawal,
				Amount:                decimal.Zero,
			},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.trans.SignedAmount()
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestFinAccountTransStatusID_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		current domain.FinAccountTransStatusID
		target  domain.FinAccountTransStatusID
		want    bool
	}{
		{"created to approved", domain.FinAccountTransCreated, domain.FinAccountTransApproved, true},
		{"created to canceled", domain.FinAccountTransCreated, domain.FinAccountTransCanceled, true},
		{"created to created is not a transition", domain.FinAccountTransCreated, domain.FinAccountTransCreated, false},
		{"approved is terminal", domain.FinAccountTransApproved, domain.FinAccountTransCanceled, false},
		{"approved cannot regress", domain.FinAccountTransApproved, domain.FinAccountTransCreated, false},
		{"canceled is terminal", domain.FinAccountTransCanceled, domain.FinAccountTransApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.current.CanTransitionTo(tt.target))
		})
	}
}
