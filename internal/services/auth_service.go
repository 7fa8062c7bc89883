package services

import (
	"errors"
	"fmt"
	"log"

	"butik/internal/apperrors"
	"butik/internal/auth"
	"butik/internal/models"
	"butik/internal/repositories"
)

// AuthService handles registration, login, token authentication and account
// maintenance. It is the only code path through which a password reaches
// storage, always hashed.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new account and returns it together with a freshly
// issued token. Email uniqueness is enforced by the repository; a duplicate
// surfaces as apperrors.ErrDuplicateEmail and nothing is written.
func (s *AuthService) Register(username, email, password string) (*models.User, string, error) {
	user := &models.User{
		Username: username,
		Email:    email,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Login authenticates by email and password and returns the account with a
// new token. Unknown email and wrong password collapse into the same
// ErrInvalidCredentials so the response confirms neither.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// Authenticate verifies a bearer token and resolves it to a live account,
// returning the identity without the password hash. Every failure, including
// a token whose subject no longer exists, yields ErrUnauthenticated.
func (s *AuthService) Authenticate(tokenString string) (auth.Identity, error) {
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return auth.Identity{}, apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		// The account may have been deleted since the token was issued.
		log.Printf("Token resolved to no user: %v", err)
		return auth.Identity{}, apperrors.ErrUnauthenticated
	}

	return auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
	}, nil
}

// GetUser returns the account for an ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ListUsers returns every account. Admin-only at the route level.
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// UpdateProfile changes the username and email of an account.
func (s *AuthService) UpdateProfile(userID, username, email string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password of an account after verifying the
// current one. The new password goes through the same hashing path as
// registration; outstanding tokens remain valid until they expire.
func (s *AuthService) ChangePassword(userID, current, next string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(current) {
		return apperrors.ErrInvalidCredentials
	}

	if err := user.SetPassword(next); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return s.userRepo.Update(user)
}
