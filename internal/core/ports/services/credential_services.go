package services

import (
	"context"

	"github.com/spendlog/spendlog_backend/internal/core/domain"
	"github.com/spendlog/spendlog_backend/internal/dto"
)

// CredentialSvcFacade owns password verification, lockout state transitions,
// and session issuance. Login failures are policy rejections; persistence
// failures surface as infrastructure errors.
type CredentialSvcFacade interface {
	// Login validates credentials against the stored account, applying
	// suspension and lockout checks in order, then issues a fresh session
	// and a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error)

	// Logout clears the stored session and verifies the post-write value is
	// nil. Idempotent.
	Logout(ctx context.Context, userID string) error
}
