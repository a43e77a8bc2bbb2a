package models

import "github.com/shopspring/decimal"

// Transaction mirrors the transactions table.
// Note: Amount uses github.com/shopspring/decimal to keep money exact.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	IsDeleted     bool            `db:"is_deleted"`
	AuditFields
}
