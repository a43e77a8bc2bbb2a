package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
	"github.com/spendlog/spendlog_backend/internal/utils/pagination"
)

// CreateTransactionRequest carries a new income/expense entry. The
// txdirection rule rejects a type inconsistent with the amount sign.
type CreateTransactionRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE,txdirection"`
}

// UpdateTransactionRequest is a partial patch; nil fields stay untouched.
// The owner field is absent on purpose. When amount and type arrive
// together the txdirection rule still applies.
type UpdateTransactionRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type" binding:"omitempty,oneof=INCOME EXPENSE,txdirection"`
}

// ListTransactionsParams are the listing query parameters. Pages are
// 1-indexed and the page size is capped at 10.
type ListTransactionsParams struct {
	Limit int        `form:"limit" binding:"required,min=1,max=10"`
	Page  int        `form:"page" binding:"required,min=1"`
	From  *time.Time `form:"from" time_format:"2006-01-02"`
	To    *time.Time `form:"to" time_format:"2006-01-02"`
}

// ToFilter converts the bound query parameters into the domain filter.
func (p ListTransactionsParams) ToFilter() domain.TransactionListFilter {
	return domain.TransactionListFilter{
		From:  p.From,
		To:    p.To,
		Limit: p.Limit,
		Page:  p.Page,
	}
}

// TransactionResponse is the transport shape of a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// SummaryResponse carries the whole-set aggregates.
type SummaryResponse struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

// ListTransactionsResponse is the listing envelope.
type ListTransactionsResponse struct {
	Summary      SummaryResponse       `json:"summary"`
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   pagination.Meta       `json:"pagination"`
}

// ToTransactionResponse converts a domain Transaction to its transport shape.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Description:   txn.Description,
		Amount:        txn.Amount,
		Type:          string(txn.Type),
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}
}

// ToListTransactionsResponse assembles the listing envelope from the domain
// result and the requested window.
func ToListTransactionsResponse(result *domain.TransactionListResult, limit, page int) ListTransactionsResponse {
	items := make([]TransactionResponse, len(result.Transactions))
	for i := range result.Transactions {
		items[i] = ToTransactionResponse(&result.Transactions[i])
	}
	return ListTransactionsResponse{
		Summary: SummaryResponse{
			TotalIncome:  result.Summary.TotalIncome,
			TotalExpense: result.Summary.TotalExpense,
			Balance:      result.Summary.Balance,
		},
		Transactions: items,
		Pagination:   pagination.NewMeta(result.Total, len(items), limit, page),
	}
}
