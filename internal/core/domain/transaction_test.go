package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
)

func TestTransactionType_IsValid(t *testing.T) {
	tests := []struct {
		name string
		typ  domain.TransactionType
		want bool
	}{
		{"income", domain.Income, true},
		{"expense", domain.Expense, true},
		{"empty", domain.TransactionType(""), false},
		{"lowercase is rejected", domain.TransactionType("income"), false},
		{"unknown", domain.TransactionType("TRANSFER"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.IsValid())
		})
	}
}

func TestNewTransactionSummary(t *testing.T) {
	tests := []struct {
		name         string
		totalIncome  decimal.Decimal
		totalExpense decimal.Decimal
		wantBalance  decimal.Decimal
	}{
		{
			name:         "empty set yields zero everywhere",
			totalIncome:  decimal.Zero,
			totalExpense: decimal.Zero,
			wantBalance:  decimal.Zero,
		},
		{
			name:         "single expense",
			totalIncome:  decimal.Zero,
			totalExpense: decimal.NewFromInt(-5),
			wantBalance:  decimal.NewFromInt(-5),
		},
		{
			name:         "income outweighs expenses",
			totalIncome:  decimal.NewFromInt(1000),
			totalExpense: decimal.NewFromInt(-250),
			wantBalance:  decimal.NewFromInt(750),
		},
		{
			name:         "fractional amounts stay exact",
			totalIncome:  decimal.RequireFromString("10.10"),
			totalExpense: decimal.RequireFromString("-0.30"),
			wantBalance:  decimal.RequireFromString("9.80"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NewTransactionSummary(tt.totalIncome, tt.totalExpense)
			assert.True(t, got.TotalIncome.Equal(tt.totalIncome))
			assert.True(t, got.TotalExpense.Equal(tt.totalExpense))
			assert.True(t, got.Balance.Equal(tt.wantBalance), "balance: want %s, got %s", tt.wantBalance, got.Balance)
		})
	}
}
