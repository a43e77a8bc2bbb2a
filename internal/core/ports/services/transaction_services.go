package services

import (
	"context"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
	"github.com/spendlog/spendlog_backend/internal/dto"
)

// TransactionReaderSvc defines read operations, always scoped to the caller.
type TransactionReaderSvc interface {
	// GetTransactionByID fetches one live transaction owned by ownerID.
	GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns one page plus whole-set summary and count.
	ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionListFilter) (*domain.TransactionListResult, error)
}

// TransactionWriterSvc defines write operations, always scoped to the caller.
type TransactionWriterSvc interface {
	// CreateTransaction records a new entry for ownerID.
	CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction applies a partial patch to a transaction owned by ownerID.
	UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction soft-deletes a transaction owned by ownerID.
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
