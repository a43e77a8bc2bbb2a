package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendlog/spendlog_backend/internal/apperrors"
	"github.com/spendlog/spendlog_backend/internal/core/domain"
	portssvc "github.com/spendlog/spendlog_backend/internal/core/ports/services"
	"github.com/spendlog/spendlog_backend/internal/core/services"
	"github.com/spendlog/spendlog_backend/internal/dto"
	"github.com/spendlog/spendlog_backend/internal/utils"
)

// --- Mock UserRepository (shared with the credential service suite) ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetLoginSession(ctx context.Context, userID string, session *string) (*domain.User, error) {
	args := m.Called(ctx, userID, session)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateLockoutState(ctx context.Context, userID string, blocked domain.BlockedStatus, history []domain.BlockedStatus) error {
	args := m.Called(ctx, userID, blocked, history)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserProfile(ctx context.Context, userID string, patch domain.UserProfilePatch) (*domain.User, error) {
	args := m.Called(ctx, userID, patch)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- RegisterUser Tests ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FirstName: "Alice",
		LastName:  "Example",
		Username:  "Alice",
		Password:  "password123",
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "Alice").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "alice" &&
			user.FirstName == "Alice" &&
			user.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, user.PasswordHash) &&
			user.LoginSession != nil && *user.LoginSession != ""
	})).Return(nil).Once()

	createdUser, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdUser)
	suite.Equal("alice", createdUser.Username)
	suite.NotEmpty(createdUser.UserID)
	suite.False(createdUser.Blocked.IsBlocked)
	suite.False(createdUser.IsSuspended)

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FirstName: "Alice",
		LastName:  "Example",
		Username:  "alice",
		Password:  "password123",
	}
	existing := &domain.User{UserID: uuid.NewString(), Username: "alice"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(existing, nil).Once()

	createdUser, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_RaceLostAtInsert() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FirstName: "Alice",
		LastName:  "Example",
		Username:  "alice",
		Password:  "password123",
	}

	// The advisory probe races: the insert still hits the unique constraint.
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()

	createdUser, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_SaveError() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{
		FirstName: "Bob",
		LastName:  "Example",
		Username:  "bob",
		Password:  "password123",
	}
	expectedErr := assert.AnError

	suite.mockUserRepo.On("FindUserByUsername", ctx, "bob").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(expectedErr).Once()

	createdUser, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, expectedErr)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- GetUserByID Tests ---

func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedUser := &domain.User{UserID: userID, Username: "found"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateProfile Tests ---

func (suite *UserServiceTestSuite) TestUpdateProfile_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	newFirst := "Alicia"
	newUsername := "Alicia"
	req := dto.UpdateUserProfileRequest{FirstName: &newFirst, Username: &newUsername}
	updated := &domain.User{UserID: userID, Username: "alicia", FirstName: "Alicia"}

	suite.mockUserRepo.On("UpdateUserProfile", ctx, userID, mock.MatchedBy(func(patch domain.UserProfilePatch) bool {
		return patch.FirstName != nil && *patch.FirstName == "Alicia" &&
			patch.Username != nil && *patch.Username == "alicia" &&
			patch.LastName == nil
	})).Return(updated, nil).Once()

	user, err := suite.service.UpdateProfile(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal(updated, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateProfile_DuplicateUsername() {
	ctx := context.Background()
	userID := uuid.NewString()
	newUsername := "taken"
	req := dto.UpdateUserProfileRequest{Username: &newUsername}

	suite.mockUserRepo.On("UpdateUserProfile", ctx, userID, mock.AnythingOfType("domain.UserProfilePatch")).
		Return(nil, apperrors.ErrDuplicate).Once()

	user, err := suite.service.UpdateProfile(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateProfile_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	newFirst := "Ghost"
	req := dto.UpdateUserProfileRequest{FirstName: &newFirst}

	suite.mockUserRepo.On("UpdateUserProfile", ctx, userID, mock.AnythingOfType("domain.UserProfilePatch")).
		Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.UpdateProfile(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
