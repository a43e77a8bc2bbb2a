package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendlog/spendlog_backend/internal/apperrors"
	"github.com/spendlog/spendlog_backend/internal/core/domain"
	portsrepo "github.com/spendlog/spendlog_backend/internal/core/ports/repositories"
	"github.com/spendlog/spendlog_backend/internal/models"
	"github.com/spendlog/spendlog_backend/internal/utils/mapping"
)

const userColumns = `user_id, username, first_name, last_name, password_hash, login_session,
	is_suspended, is_blocked, blocked_at, blocked_count, blocked_for, blocked_history,
	is_deleted, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.FirstName,
		&m.LastName,
		&m.PasswordHash,
		&m.LoginSession,
		&m.IsSuspended,
		&m.IsBlocked,
		&m.BlockedAt,
		&m.BlockedCount,
		&m.BlockedFor,
		&m.BlockedHistory,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d, err := mapping.ToDomainUser(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m, err := mapping.ToModelUser(user)
	if err != nil {
		return apperrors.NewAppError(500, "0x000C00", "failed to encode user", err)
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.FirstName,
		m.LastName,
		m.PasswordHash,
		m.LoginSession,
		m.IsSuspended,
		m.IsBlocked,
		m.BlockedAt,
		m.BlockedCount,
		m.BlockedFor,
		m.BlockedHistory,
		m.IsDeleted,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// The unique index on username is the authoritative guard
			// against concurrent registrations.
			return fmt.Errorf("username already taken: %w", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "0x000C00", "failed to save user", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not saved: %w", apperrors.ErrNotPersisted)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1 AND is_deleted = FALSE;
	`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "0x000C02", "failed to find user by id", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = LOWER($1) AND is_deleted = FALSE;
	`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "0x000C04", "failed to find user by username", err)
	}
	return user, nil
}

// SetLoginSession writes the session column and returns the post-write row,
// so the caller can verify what the store actually holds.
func (r *PgxUserRepository) SetLoginSession(ctx context.Context, userID string, session *string) (*domain.User, error) {
	query := `
		UPDATE users
		SET login_session = $1, updated_at = GREATEST(updated_at, now())
		WHERE user_id = $2 AND is_deleted = FALSE
		RETURNING ` + userColumns + `;
	`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, session, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "0x000C06", "failed to set login session", err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateLockoutState(ctx context.Context, userID string, blocked domain.BlockedStatus, history []domain.BlockedStatus) error {
	encoded, err := json.Marshal(history)
	if err != nil {
		return apperrors.NewAppError(500, "0x000C08", "failed to encode blocked history", err)
	}
	query := `
		UPDATE users
		SET is_blocked = $1, blocked_at = $2, blocked_count = $3, blocked_for = $4,
			blocked_history = $5, updated_at = GREATEST(updated_at, now())
		WHERE user_id = $6 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		blocked.IsBlocked,
		blocked.BlockedAt,
		blocked.BlockedCount,
		blocked.BlockedFor,
		encoded,
		userID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "0x000C09", "failed to update lockout state", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateUserProfile patches only the profile columns. Credential, session,
// suspension, lockout, and delete columns are unreachable from this path.
func (r *PgxUserRepository) UpdateUserProfile(ctx context.Context, userID string, patch domain.UserProfilePatch) (*domain.User, error) {
	query := `
		UPDATE users
		SET first_name = COALESCE($1, first_name),
			last_name = COALESCE($2, last_name),
			username = COALESCE(LOWER($3), username),
			updated_at = GREATEST(updated_at, now())
		WHERE user_id = $4 AND is_deleted = FALSE
		RETURNING ` + userColumns + `;
	`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, patch.FirstName, patch.LastName, patch.Username, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username already taken: %w", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "0x000C13", "failed to update user profile", err)
	}
	return user, nil
}
