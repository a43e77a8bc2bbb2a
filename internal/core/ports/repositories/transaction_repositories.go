package repositories

import (
	"context"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
)

// TransactionReader defines read operations for transactions. Every lookup
// is owner-scoped and soft-delete-scoped; an absent row and a foreign-owned
// row are both apperrors.ErrNotFound.
type TransactionReader interface {
	// FindTransactionByOwner retrieves a single live transaction owned by ownerID.
	FindTransactionByOwner(ctx context.Context, transactionID, ownerID string) (*domain.Transaction, error)

	// ListTransactionsByOwner returns one page of the filtered set along with
	// the pre-pagination count and the whole-set income/expense summary, all
	// read from a single consistent snapshot.
	ListTransactionsByOwner(ctx context.Context, ownerID string, filter domain.TransactionListFilter) ([]domain.Transaction, int, domain.TransactionSummary, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionByOwner applies a partial patch to a live transaction
	// owned by ownerID and returns the post-update row.
	UpdateTransactionByOwner(ctx context.Context, transactionID, ownerID string, patch domain.TransactionPatch) (*domain.Transaction, error)

	// MarkTransactionDeleted soft-deletes a live transaction owned by ownerID.
	// It fails with apperrors.ErrNotFound unless exactly one row matched.
	MarkTransactionDeleted(ctx context.Context, transactionID, ownerID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
