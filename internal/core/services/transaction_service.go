package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
	portsrepo "github.com/spendlog/spendlog_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlog/spendlog_backend/internal/core/ports/services"
	"github.com/spendlog/spendlog_backend/internal/dto"
)

const (
	defaultPageSize = 10
	maxPageSize     = 10
)

type transactionService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        ownerID,
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          domain.TransactionType(req.Type),
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByOwner(ctx, transactionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// ListTransactions returns one page plus the whole-set summary. An empty
// filtered set is a valid listing: empty page, zero summary, total zero.
func (s *transactionService) ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionListFilter) (*domain.TransactionListResult, error) {
	if filter.Limit < 1 || filter.Limit > maxPageSize {
		filter.Limit = defaultPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	txns, total, summary, err := s.txnRepo.ListTransactionsByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &domain.TransactionListResult{
		Transactions: txns,
		Summary:      summary,
		Total:        total,
	}, nil
}

// UpdateTransaction patches the caller's own transaction. The patch shape
// has no owner field, so ownership survives any payload.
func (s *transactionService) UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	patch := domain.TransactionPatch{
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		patch.Type = &t
	}

	txn, err := s.txnRepo.UpdateTransactionByOwner(ctx, transactionID, ownerID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if err := s.txnRepo.MarkTransactionDeleted(ctx, transactionID, ownerID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
