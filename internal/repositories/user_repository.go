package repositories

import "butik/internal/models"

// UserRepository defines the interface for user data access. Email uniqueness
// is an invariant of the store itself, not of its callers: Create must fail
// with apperrors.ErrDuplicateEmail when the email is already taken, even under
// concurrent registration.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
}
