package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spendlog/spendlog_backend/internal/apperrors"
	"github.com/spendlog/spendlog_backend/internal/core/domain"
	portsrepo "github.com/spendlog/spendlog_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlog/spendlog_backend/internal/core/ports/services"
	"github.com/spendlog/spendlog_backend/internal/dto"
	"github.com/spendlog/spendlog_backend/internal/middleware"
	"github.com/spendlog/spendlog_backend/internal/platform/config"
	"github.com/spendlog/spendlog_backend/internal/utils"
)

// sessionTokenBytes is the entropy of an opaque session string; 32 bytes
// hex-encode to 64 characters.
const sessionTokenBytes = 32

// credentialService implements the CredentialSvcFacade: password checks,
// lockout state transitions, session issuance, and logout verification.
type credentialService struct {
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewCredentialService creates a new credentialService.
func NewCredentialService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.CredentialSvcFacade {
	return &credentialService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.CredentialSvcFacade = (*credentialService)(nil)

// Login runs the ordered account checks, then stores a fresh session string
// and signs an access token for the account.
func (s *credentialService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same rejection as a bad password: usernames are not probeable.
			return nil, "", fmt.Errorf("wrong credentials: %w", apperrors.ErrUnauthorized)
		}
		return nil, "", fmt.Errorf("failed to look up user for login: %w", err)
	}

	if err := s.validateAccount(ctx, user, req.Password); err != nil {
		return nil, "", err
	}

	session, err := utils.GenerateSecureRandomString(sessionTokenBytes)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "0x000D02", "failed to generate session string", err)
	}

	updated, err := s.userRepo.SetLoginSession(ctx, user.UserID, &session)
	if err != nil {
		return nil, "", fmt.Errorf("failed to store login session: %w", err)
	}
	if updated.LoginSession == nil || *updated.LoginSession != session {
		return nil, "", apperrors.NewAppError(500, "0x000D02", "login session readback mismatch", nil)
	}

	token, err := utils.GenerateJWT(updated.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "0x000D02", "failed to sign access token", err)
	}

	return updated, token, nil
}

// validateAccount applies suspension, lockout, and password checks in order.
// Suspension always short-circuits before the block timer.
func (s *credentialService) validateAccount(ctx context.Context, user *domain.User, password string) error {
	now := time.Now()

	if user.IsSuspended {
		return apperrors.ErrAccountSuspended
	}

	if user.Blocked.IsBlocked {
		if !user.Blocked.WindowElapsed(now) {
			return &apperrors.AccountLockedError{RetryAfterSeconds: user.Blocked.RemainingSeconds(now)}
		}
		// Window lapsed; clear the block lazily before checking the password.
		cleared := domain.BlockedStatus{}
		if err := s.userRepo.UpdateLockoutState(ctx, user.UserID, cleared, user.BlockedHistory); err != nil {
			return fmt.Errorf("failed to clear lapsed lockout: %w", err)
		}
		user.Blocked = cleared
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		if err := s.recordFailedAttempt(ctx, user, now); err != nil {
			return err
		}
		return fmt.Errorf("wrong credentials: %w", apperrors.ErrUnauthorized)
	}

	if user.Blocked.BlockedCount > 0 {
		// Successful login resets the transient failure counter.
		reset := domain.BlockedStatus{}
		if err := s.userRepo.UpdateLockoutState(ctx, user.UserID, reset, user.BlockedHistory); err != nil {
			return fmt.Errorf("failed to reset failure counter: %w", err)
		}
		user.Blocked = reset
	}

	return nil
}

// recordFailedAttempt bumps the failure counter and, at the threshold,
// flips the account into a blocked window whose length doubles with each
// past episode.
func (s *credentialService) recordFailedAttempt(ctx context.Context, user *domain.User, now time.Time) error {
	blocked := user.Blocked
	history := user.BlockedHistory
	blocked.BlockedCount++

	if blocked.BlockedCount >= s.cfg.LockoutThreshold {
		blocked.IsBlocked = true
		blocked.BlockedAt = &now
		blocked.BlockedFor = s.blockSeconds(len(history))
		history = append(history, blocked)

		middleware.GetLoggerFromCtx(ctx).Warn("Account blocked after repeated login failures",
			slog.String("user_id", user.UserID),
			slog.Int("failed_attempts", blocked.BlockedCount),
			slog.Int64("blocked_for_seconds", blocked.BlockedFor),
		)
	}

	if err := s.userRepo.UpdateLockoutState(ctx, user.UserID, blocked, history); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	user.Blocked = blocked
	user.BlockedHistory = history
	return nil
}

// blockSeconds escalates the window: base doubled per past episode, capped.
func (s *credentialService) blockSeconds(pastEpisodes int) int64 {
	window := s.cfg.LockoutBaseBlock
	for i := 0; i < pastEpisodes; i++ {
		window *= 2
		if window >= s.cfg.LockoutMaxBlock {
			window = s.cfg.LockoutMaxBlock
			break
		}
	}
	return int64(window / time.Second)
}

// Logout clears the stored session and trusts only the post-write value:
// anything other than a nil session after the write is a failure.
func (s *credentialService) Logout(ctx context.Context, userID string) error {
	updated, err := s.userRepo.SetLoginSession(ctx, userID, nil)
	if err != nil {
		return fmt.Errorf("failed to clear login session: %w", err)
	}
	if updated.LoginSession != nil {
		return apperrors.NewAppError(422, "0x000D04", "user not logged out", nil)
	}
	return nil
}
