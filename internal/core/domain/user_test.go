package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
)

func TestBlockedStatus_WindowElapsed(t *testing.T) {
	now := time.Now()
	recent := now.Add(-5 * time.Minute)
	old := now.Add(-30 * time.Minute)

	tests := []struct {
		name    string
		blocked domain.BlockedStatus
		want    bool
	}{
		{
			name:    "not blocked counts as elapsed",
			blocked: domain.BlockedStatus{},
			want:    true,
		},
		{
			name:    "blocked without timestamp counts as elapsed",
			blocked: domain.BlockedStatus{IsBlocked: true, BlockedFor: 900},
			want:    true,
		},
		{
			name:    "window still active",
			blocked: domain.BlockedStatus{IsBlocked: true, BlockedAt: &recent, BlockedFor: 900},
			want:    false,
		},
		{
			name:    "window lapsed",
			blocked: domain.BlockedStatus{IsBlocked: true, BlockedAt: &old, BlockedFor: 900},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.blocked.WindowElapsed(now))
		})
	}
}

func TestBlockedStatus_RemainingSeconds(t *testing.T) {
	now := time.Now()
	recent := now.Add(-5 * time.Minute)
	old := now.Add(-30 * time.Minute)

	t.Run("not blocked", func(t *testing.T) {
		assert.EqualValues(t, 0, domain.BlockedStatus{}.RemainingSeconds(now))
	})

	t.Run("active window", func(t *testing.T) {
		b := domain.BlockedStatus{IsBlocked: true, BlockedAt: &recent, BlockedFor: 900}
		remaining := b.RemainingSeconds(now)
		assert.Greater(t, remaining, int64(0))
		assert.LessOrEqual(t, remaining, int64(600))
	})

	t.Run("lapsed window", func(t *testing.T) {
		b := domain.BlockedStatus{IsBlocked: true, BlockedAt: &old, BlockedFor: 900}
		assert.EqualValues(t, 0, b.RemainingSeconds(now))
	})
}
