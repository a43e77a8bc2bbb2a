package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendlog/spendlog_backend/internal/apperrors"
	"github.com/spendlog/spendlog_backend/internal/core/domain"
	portssvc "github.com/spendlog/spendlog_backend/internal/core/ports/services"
	"github.com/spendlog/spendlog_backend/internal/core/services"
	"github.com/spendlog/spendlog_backend/internal/dto"
	"github.com/spendlog/spendlog_backend/internal/platform/config"
	"github.com/spendlog/spendlog_backend/internal/utils"
)

const (
	testPassword  = "correct-horse-battery"
	testThreshold = 3
)

// --- Test Suite ---
type CredentialServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.CredentialSvcFacade
	passwordHash string
}

func (suite *CredentialServiceTestSuite) SetupSuite() {
	// Hash once; bcrypt is deliberately slow.
	hash, err := utils.HashPassword(testPassword)
	suite.Require().NoError(err)
	suite.passwordHash = hash
}

func (suite *CredentialServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "spendlog-backend",
		LockoutThreshold:  testThreshold,
		LockoutBaseBlock:  15 * time.Minute,
		LockoutMaxBlock:   24 * time.Hour,
	}
	suite.service = services.NewCredentialService(cfg, suite.mockUserRepo)
}

func (suite *CredentialServiceTestSuite) newUser() *domain.User {
	return &domain.User{
		UserID:       uuid.NewString(),
		Username:     "alice",
		PasswordHash: suite.passwordHash,
	}
}

// --- Login Tests ---

func (suite *CredentialServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := suite.newUser()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	updated := suite.newUser()
	updated.UserID = user.UserID
	suite.mockUserRepo.On("SetLoginSession", ctx, user.UserID, mock.AnythingOfType("*string")).
		Run(func(args mock.Arguments) {
			// Echo the stored session so the readback verification passes.
			updated.LoginSession = args.Get(2).(*string)
		}).Return(updated, nil).Once()

	loggedIn, token, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: testPassword})

	suite.Require().NoError(err)
	suite.Require().NotNil(loggedIn)
	suite.NotEmpty(token)
	suite.Require().NotNil(loggedIn.LoginSession)
	suite.Len(*loggedIn.LoginSession, 64)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateLockoutState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CredentialServiceTestSuite) TestLogin_UnknownUsername() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, token, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: testPassword})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Empty(token)
	// Indistinguishable from a bad password.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestLogin_WrongPasswordBelowThreshold() {
	ctx := context.Background()
	user := suite.newUser()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateLockoutState", ctx, user.UserID, mock.MatchedBy(func(blocked domain.BlockedStatus) bool {
		return blocked.BlockedCount == 1 && !blocked.IsBlocked && blocked.BlockedAt == nil
	}), mock.Anything).Return(nil).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong-password"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SetLoginSession", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CredentialServiceTestSuite) TestLogin_ThresholdFlipsBlock() {
	ctx := context.Background()
	user := suite.newUser()
	user.Blocked.BlockedCount = testThreshold - 1

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateLockoutState", ctx, user.UserID, mock.MatchedBy(func(blocked domain.BlockedStatus) bool {
		return blocked.IsBlocked &&
			blocked.BlockedCount == testThreshold &&
			blocked.BlockedAt != nil &&
			blocked.BlockedFor == int64((15*time.Minute)/time.Second)
	}), mock.MatchedBy(func(history []domain.BlockedStatus) bool {
		return len(history) == 1 && history[0].IsBlocked
	})).Return(nil).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong-password"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestLogin_SecondEpisodeDoublesWindow() {
	ctx := context.Background()
	user := suite.newUser()
	user.Blocked.BlockedCount = testThreshold - 1
	past := time.Now().Add(-2 * time.Hour)
	user.BlockedHistory = []domain.BlockedStatus{
		{IsBlocked: true, BlockedAt: &past, BlockedCount: testThreshold, BlockedFor: 900},
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateLockoutState", ctx, user.UserID, mock.MatchedBy(func(blocked domain.BlockedStatus) bool {
		return blocked.IsBlocked && blocked.BlockedFor == int64((30*time.Minute)/time.Second)
	}), mock.MatchedBy(func(history []domain.BlockedStatus) bool {
		return len(history) == 2
	})).Return(nil).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong-password"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestLogin_EscalationIsCapped() {
	ctx := context.Background()
	user := suite.newUser()
	user.Blocked.BlockedCount = testThreshold - 1
	past := time.Now().Add(-48 * time.Hour)
	for i := 0; i < 10; i++ {
		user.BlockedHistory = append(user.BlockedHistory, domain.BlockedStatus{
			IsBlocked: true, BlockedAt: &past, BlockedCount: testThreshold, BlockedFor: 900,
		})
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateLockoutState", ctx, user.UserID, mock.MatchedBy(func(blocked domain.BlockedStatus) bool {
		return blocked.IsBlocked && blocked.BlockedFor == int64((24*time.Hour)/time.Second)
	}), mock.Anything).Return(nil).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong-password"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestLogin_ActiveBlockRejectsCorrectPassword() {
	ctx := context.Background()
	user := suite.newUser()
	blockedAt := time.Now().Add(-2 * time.Minute)
	user.Blocked = domain.BlockedStatus{
		IsBlocked:    true,
		BlockedAt:    &blockedAt,
		BlockedCount: testThreshold,
		BlockedFor:   900,
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: testPassword})

	suite.Require().Error(err)
	var locked *apperrors.AccountLockedError
	suite.Require().ErrorAs(err, &locked)
	suite.Greater(locked.RetryAfterSeconds, int64(0))
	suite.LessOrEqual(locked.RetryAfterSeconds, int64(900))
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateLockoutState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SetLoginSession", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CredentialServiceTestSuite) TestLogin_SuspensionBeatsBlockTimer() {
	ctx := context.Background()
	user := suite.newUser()
	user.IsSuspended = true
	blockedAt := time.Now().Add(-2 * time.Minute)
	user.Blocked = domain.BlockedStatus{
		IsBlocked:    true,
		BlockedAt:    &blockedAt,
		BlockedCount: testThreshold,
		BlockedFor:   900,
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: testPassword})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountSuspended)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestLogin_LapsedWindowClearsAndSucceeds() {
	ctx := context.Background()
	user := suite.newUser()
	blockedAt := time.Now().Add(-20 * time.Minute)
	episode := domain.BlockedStatus{
		IsBlocked:    true,
		BlockedAt:    &blockedAt,
		BlockedCount: testThreshold,
		BlockedFor:   900,
	}
	user.Blocked = episode
	user.BlockedHistory = []domain.BlockedStatus{episode}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	// Lazy clear keeps the episode history intact.
	suite.mockUserRepo.On("UpdateLockoutState", ctx, user.UserID, domain.BlockedStatus{}, mock.MatchedBy(func(history []domain.BlockedStatus) bool {
		return len(history) == 1
	})).Return(nil).Once()
	updated := suite.newUser()
	updated.UserID = user.UserID
	suite.mockUserRepo.On("SetLoginSession", ctx, user.UserID, mock.AnythingOfType("*string")).
		Run(func(args mock.Arguments) {
			updated.LoginSession = args.Get(2).(*string)
		}).Return(updated, nil).Once()

	loggedIn, token, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: testPassword})

	suite.Require().NoError(err)
	suite.NotNil(loggedIn)
	suite.NotEmpty(token)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestLogin_SuccessResetsFailureCounter() {
	ctx := context.Background()
	user := suite.newUser()
	user.Blocked.BlockedCount = testThreshold - 1

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateLockoutState", ctx, user.UserID, domain.BlockedStatus{}, mock.Anything).Return(nil).Once()
	updated := suite.newUser()
	updated.UserID = user.UserID
	suite.mockUserRepo.On("SetLoginSession", ctx, user.UserID, mock.AnythingOfType("*string")).
		Run(func(args mock.Arguments) {
			updated.LoginSession = args.Get(2).(*string)
		}).Return(updated, nil).Once()

	_, token, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: testPassword})

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestLogin_SessionReadbackMismatch() {
	ctx := context.Background()
	user := suite.newUser()
	stale := "stale-session"
	updated := suite.newUser()
	updated.UserID = user.UserID
	updated.LoginSession = &stale

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(user, nil).Once()
	suite.mockUserRepo.On("SetLoginSession", ctx, user.UserID, mock.AnythingOfType("*string")).Return(updated, nil).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Username: "alice", Password: testPassword})

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal("0x000D02", appErr.Identifier)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Logout Tests ---

func (suite *CredentialServiceTestSuite) TestLogout_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	updated := &domain.User{UserID: userID}

	suite.mockUserRepo.On("SetLoginSession", ctx, userID, (*string)(nil)).Return(updated, nil).Once()

	err := suite.service.Logout(ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestLogout_SessionSurvivesWrite() {
	ctx := context.Background()
	userID := uuid.NewString()
	stubborn := "still-here"
	updated := &domain.User{UserID: userID, LoginSession: &stubborn}

	suite.mockUserRepo.On("SetLoginSession", ctx, userID, (*string)(nil)).Return(updated, nil).Once()

	err := suite.service.Logout(ctx, userID)

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(422, appErr.Code)
	suite.Equal("0x000D04", appErr.Identifier)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *CredentialServiceTestSuite) TestLogout_UnknownUser() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("SetLoginSession", ctx, userID, (*string)(nil)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.Logout(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestCredentialService(t *testing.T) {
	suite.Run(t, new(CredentialServiceTestSuite))
}
