package repositories

import (
	"context"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID, excluding soft-deleted rows.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by lowercase-normalized username,
	// excluding soft-deleted rows.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. A username uniqueness violation surfaces
	// as apperrors.ErrDuplicate; the database constraint is the authoritative
	// race guard.
	SaveUser(ctx context.Context, user domain.User) error

	// SetLoginSession stores the session token (nil to clear) and returns the
	// post-write row so callers can verify the stored value.
	SetLoginSession(ctx context.Context, userID string, session *string) (*domain.User, error)

	// UpdateLockoutState persists the current lockout state and episode history.
	UpdateLockoutState(ctx context.Context, userID string, blocked domain.BlockedStatus, history []domain.BlockedStatus) error

	// UpdateUserProfile applies a profile patch and returns the updated user.
	// The patch shape keeps every sensitive column out of reach.
	UpdateUserProfile(ctx context.Context, userID string, patch domain.UserProfilePatch) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
