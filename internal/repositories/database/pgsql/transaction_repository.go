package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spendlog/spendlog_backend/internal/apperrors"
	"github.com/spendlog/spendlog_backend/internal/core/domain"
	portsrepo "github.com/spendlog/spendlog_backend/internal/core/ports/repositories"
	"github.com/spendlog/spendlog_backend/internal/models"
	"github.com/spendlog/spendlog_backend/internal/utils/mapping"
	"github.com/spendlog/spendlog_backend/internal/utils/pagination"
)

const transactionColumns = `transaction_id, user_id, description, amount, type, is_deleted, created_at, updated_at`

const (
	insertTransactionQuery = `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	findTransactionQuery = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	// liveOwnedScope is shared by the count, summary, and page statements of a
	// listing so all three filter the identical set.
	liveOwnedScope = `FROM transactions WHERE user_id = $1 AND is_deleted = FALSE`

	updateTransactionQuery = `
		UPDATE transactions
		SET description = COALESCE($1, description),
			amount = COALESCE($2, amount),
			type = COALESCE($3, type),
			updated_at = GREATEST(updated_at, now())
		WHERE transaction_id = $4 AND user_id = $5 AND is_deleted = FALSE
		RETURNING ` + transactionColumns + `;
	`
	deleteTransactionQuery = `
		UPDATE transactions
		SET is_deleted = TRUE, updated_at = GREATEST(updated_at, now())
		WHERE transaction_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
)

// listScope builds the WHERE clause and arguments for a listing, starting from
// liveOwnedScope and appending the optional inclusive updated_at bounds. It
// returns the clause, the bound arguments, and the next placeholder number.
func listScope(ownerID string, filter domain.TransactionListFilter) (string, []interface{}, int) {
	clause := liveOwnedScope
	args := []interface{}{ownerID}
	argNum := 2

	if filter.From != nil {
		clause += fmt.Sprintf(" AND updated_at >= $%d", argNum)
		args = append(args, *filter.From)
		argNum++
	}
	if filter.To != nil {
		clause += fmt.Sprintf(" AND updated_at <= $%d", argNum)
		args = append(args, *filter.To)
		argNum++
	}
	return clause, args, argNum
}

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Description,
		&m.Amount,
		&m.Type,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	tag, err := r.Pool.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.UserID,
		m.Description,
		m.Amount,
		m.Type,
		m.IsDeleted,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "0x000A00", "failed to save transaction", err)
	}
	if tag.RowsAffected() == 0 {
		// The store accepted the statement but persisted nothing.
		return fmt.Errorf("transaction not saved: %w", apperrors.ErrNotPersisted)
	}
	return nil
}

// FindTransactionByOwner keeps "absent" and "owned by someone else"
// indistinguishable: both fall out of the scoped filter as ErrNotFound.
func (r *PgxTransactionRepository) FindTransactionByOwner(ctx context.Context, transactionID, ownerID string) (*domain.Transaction, error) {
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, findTransactionQuery, transactionID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "0x000A02", "failed to find transaction", err)
	}
	return txn, nil
}

// ListTransactionsByOwner runs the count, the whole-set summary, and the
// requested page inside one repeatable-read transaction so all three see the
// same snapshot of the filtered set.
func (r *PgxTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, filter domain.TransactionListFilter) ([]domain.Transaction, int, domain.TransactionSummary, error) {
	baseQuery, args, argNum := listScope(ownerID, filter)

	var empty domain.TransactionSummary

	tx, err := r.BeginSnapshot(ctx)
	if err != nil {
		return nil, 0, empty, err
	}
	defer r.Rollback(ctx, tx)

	var total int
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, empty, apperrors.NewAppError(500, "0x000A04", "failed to count transactions", err)
	}

	var totalIncome, totalExpense decimal.Decimal
	summaryQuery := `SELECT
		COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) ` + baseQuery
	if err := tx.QueryRow(ctx, summaryQuery, args...).Scan(&totalIncome, &totalExpense); err != nil {
		return nil, 0, empty, apperrors.NewAppError(500, "0x000A04", "failed to summarize transactions", err)
	}
	summary := domain.NewTransactionSummary(totalIncome, totalExpense)

	pageQuery := fmt.Sprintf(
		"SELECT "+transactionColumns+" %s ORDER BY created_at ASC, transaction_id ASC LIMIT $%d OFFSET $%d",
		baseQuery, argNum, argNum+1,
	)
	pageArgs := append(args, filter.Limit, pagination.Offset(filter.Page, filter.Limit))

	rows, err := tx.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, empty, apperrors.NewAppError(500, "0x000A05", "failed to list transactions", err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.UserID,
			&m.Description,
			&m.Amount,
			&m.Type,
			&m.IsDeleted,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, 0, empty, apperrors.NewAppError(500, "0x000A05", "failed to scan transaction row", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if rows.Err() != nil {
		return nil, 0, empty, apperrors.NewAppError(500, "0x000A05", "error iterating transaction rows", rows.Err())
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, empty, apperrors.NewAppError(500, "0x000A05", "failed to commit snapshot read", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), total, summary, nil
}

// UpdateTransactionByOwner applies a partial patch. The owner column is not
// part of the SET list, so ownership can never change here.
func (r *PgxTransactionRepository) UpdateTransactionByOwner(ctx context.Context, transactionID, ownerID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	var patchType *string
	if patch.Type != nil {
		t := string(*patch.Type)
		patchType = &t
	}
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, updateTransactionQuery, patch.Description, patch.Amount, patchType, transactionID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "0x000A06", "failed to update transaction", err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) MarkTransactionDeleted(ctx context.Context, transactionID, ownerID string) error {
	tag, err := r.Pool.Exec(ctx, deleteTransactionQuery, transactionID, ownerID)
	if err != nil {
		return apperrors.NewAppError(500, "0x000A08", "failed to delete transaction", err)
	}
	if tag.RowsAffected() != 1 {
		return apperrors.ErrNotFound
	}
	return nil
}
