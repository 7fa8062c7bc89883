package services_test

import (
	"log"
	"os"
	"testing"

	"butik/internal/apperrors"
	"butik/internal/auth"
	"butik/internal/models"
	"butik/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func newAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, auth.NewTokenIssuer("test_jwt_secret"))
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	// Successful registration: the stored record carries a hash, never the
	// plaintext, and a token comes back.
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		stored := args.Get(0).(*models.User)
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.True(t, stored.CheckPassword("password123"))
		assert.False(t, stored.IsAdmin)
		stored.ID = "user-123"
	}).Return(nil).Once()

	user, token, err := authService.Register("testuser", "test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "test@example.com", user.Email)
	mockRepo.AssertExpectations(t)

	// Duplicate email surfaces unchanged.
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(apperrors.ErrDuplicateEmail).Once()
	_, _, err = authService.Register("testuser", "test@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
	}
	assert.NoError(t, user.SetPassword("password123"))

	// Successful login: the token verifies back to the user.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	loggedIn, token, err := authService.Login("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	userID, err := auth.NewTokenIssuer("test_jwt_secret").Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	mockRepo.AssertExpectations(t)

	// Wrong password and unknown email collapse into the same outcome.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.Login("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()
	_, _, err = authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		IsAdmin:  true,
	}
	assert.NoError(t, user.SetPassword("password123"))

	token, err := auth.NewTokenIssuer("test_jwt_secret").Issue(user.ID)
	assert.NoError(t, err)

	// Valid token resolves to the identity, password hash excluded by type.
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	identity, err := authService.Authenticate(token)
	assert.NoError(t, err)
	assert.Equal(t, auth.Identity{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		IsAdmin:  true,
	}, identity)
	mockRepo.AssertExpectations(t)

	// A token for a deleted account is unauthenticated, not not-found.
	mockRepo.On("GetByID", user.ID).Return(nil, apperrors.ErrNotFound).Once()
	_, err = authService.Authenticate(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	// Garbage token never reaches the repository.
	_, err = authService.Authenticate("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{ID: "user-123", Email: "test@example.com"}
	assert.NoError(t, user.SetPassword("oldpassword"))

	// Wrong current password is rejected without a write.
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	err := authService.ChangePassword(user.ID, "wrongpassword", "newpassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Correct current password stores a hash of the new one.
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		updated := args.Get(0).(*models.User)
		assert.True(t, updated.CheckPassword("newpassword"))
		assert.NotEqual(t, "newpassword", updated.PasswordHash)
	}).Return(nil).Once()

	err = authService.ChangePassword(user.ID, "oldpassword", "newpassword")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{ID: "user-123", Username: "oldname", Email: "old@example.com"}
	assert.NoError(t, user.SetPassword("password123"))

	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	updated, err := authService.UpdateProfile(user.ID, "newname", "new@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "newname", updated.Username)
	assert.Equal(t, "new@example.com", updated.Email)
	mockRepo.AssertExpectations(t)

	// Email collision on update surfaces as DuplicateEmail.
	mockRepo.On("GetByID", user.ID).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(apperrors.ErrDuplicateEmail).Once()
	_, err = authService.UpdateProfile(user.ID, "newname", "taken@example.com")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}
