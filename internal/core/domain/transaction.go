package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction is a single income or expense entry owned by exactly one user.
// Expense amounts are stored negative, so summing signed amounts yields the
// balance directly.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	IsDeleted     bool            `json:"-"`
	AuditFields
}

// TransactionPatch is a partial update. Nil fields are left untouched. The
// owner reference is deliberately absent: ownership never transfers.
type TransactionPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Type        *TransactionType
}

// TransactionListFilter narrows a listing to an inclusive updatedAt range on
// top of the always-applied owner and soft-delete scope.
type TransactionListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
	Page  int
}

// TransactionListResult is one page of a listing plus the whole-set figures.
type TransactionListResult struct {
	Transactions []Transaction
	Summary      TransactionSummary
	Total        int
}

// TransactionSummary aggregates the entire filtered set, not just one page.
type TransactionSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

// NewTransactionSummary computes the balance from its signed components.
func NewTransactionSummary(totalIncome, totalExpense decimal.Decimal) TransactionSummary {
	return TransactionSummary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome.Add(totalExpense),
	}
}
