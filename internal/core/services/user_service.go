package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spendlog/spendlog_backend/internal/apperrors"
	"github.com/spendlog/spendlog_backend/internal/core/domain"
	portsrepo "github.com/spendlog/spendlog_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlog/spendlog_backend/internal/core/ports/services"
	"github.com/spendlog/spendlog_backend/internal/dto"
	"github.com/spendlog/spendlog_backend/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new userService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// RegisterUser composes the registration flow: uniqueness probe, session
// pre-generation, password hashing, insert. The probe is advisory; the
// database unique constraint is what actually wins a race.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q already taken: %w", strings.ToLower(req.Username), apperrors.ErrDuplicate)
	}

	session, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, apperrors.NewAppError(500, "0x000D01", "failed to generate session string", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "0x000D01", "failed to hash password", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     strings.ToLower(req.Username),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		LoginSession: &session,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a masked patch: only name and username fields can
// travel through this path.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateUserProfileRequest) (*domain.User, error) {
	patch := domain.UserProfilePatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Username != nil {
		lowered := strings.ToLower(*req.Username)
		patch.Username = &lowered
	}

	user, err := s.userRepo.UpdateUserProfile(ctx, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
