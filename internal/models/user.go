package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrPlaintextPassword is returned by the persistence hook when a user record
// is about to be written without a bcrypt digest in PasswordHash.
var ErrPlaintextPassword = errors.New("password must be hashed before saving")

// User represents a registered account.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username     string `json:"username" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`
	gorm.Model   `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// SetPassword hashes the plaintext with a per-call random salt and stores the
// digest. The plaintext is never kept on the struct.
func (u *User) SetPassword(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword verifies a candidate password against the stored hash in
// constant time.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// BeforeSave aborts any write where PasswordHash does not look like a bcrypt
// digest, so a plaintext password can never reach storage even if a caller
// skips SetPassword.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if !strings.HasPrefix(u.PasswordHash, "$2") {
		return ErrPlaintextPassword
	}
	return nil
}
