package pgsql

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
)

// Every read and write against a transaction row must be scoped to the owner
// and exclude soft-deleted rows, so deleted entries never surface through
// lookups, pages, or aggregate sums.
func TestTransactionStatementsScopeLiveOwnedRows(t *testing.T) {
	statements := map[string]string{
		"find":         findTransactionQuery,
		"listing base": liveOwnedScope,
		"update":       updateTransactionQuery,
		"delete":       deleteTransactionQuery,
	}

	for name, stmt := range statements {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, stmt, "is_deleted = FALSE", "statement must exclude soft-deleted rows")
			assert.Contains(t, stmt, "user_id = $", "statement must be owner-scoped")
		})
	}
}

func TestListScope(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("no date bounds", func(t *testing.T) {
		clause, args, argNum := listScope("owner-1", domain.TransactionListFilter{Limit: 10, Page: 1})

		assert.Equal(t, liveOwnedScope, clause)
		assert.Equal(t, []interface{}{"owner-1"}, args)
		assert.Equal(t, 2, argNum)
	})

	t.Run("both date bounds", func(t *testing.T) {
		clause, args, argNum := listScope("owner-1", domain.TransactionListFilter{From: &from, To: &to, Limit: 10, Page: 1})

		assert.True(t, strings.HasPrefix(clause, liveOwnedScope))
		assert.Contains(t, clause, "updated_at >= $2")
		assert.Contains(t, clause, "updated_at <= $3")
		require.Len(t, args, 3)
		assert.Equal(t, from, args[1])
		assert.Equal(t, to, args[2])
		assert.Equal(t, 4, argNum)
	})

	t.Run("upper bound only", func(t *testing.T) {
		clause, args, argNum := listScope("owner-1", domain.TransactionListFilter{To: &to, Limit: 10, Page: 1})

		assert.Contains(t, clause, "updated_at <= $2")
		assert.NotContains(t, clause, ">=")
		require.Len(t, args, 2)
		assert.Equal(t, to, args[1])
		assert.Equal(t, 3, argNum)
	})
}
