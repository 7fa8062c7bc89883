package models_test

import (
	"testing"

	"butik/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUser_SetPasswordAndCheck(t *testing.T) {
	user := &models.User{}
	err := user.SetPassword("password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	assert.True(t, user.CheckPassword("password123"))
	assert.False(t, user.CheckPassword("wrongpassword"))
	assert.False(t, user.CheckPassword(""))
}

func TestUser_SetPasswordSaltsPerCall(t *testing.T) {
	a := &models.User{}
	b := &models.User{}
	assert.NoError(t, a.SetPassword("password123"))
	assert.NoError(t, b.SetPassword("password123"))

	// Same plaintext, different digests: the salt is random per call.
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)

	assert.True(t, a.CheckPassword("password123"))
	assert.True(t, b.CheckPassword("password123"))
}

func TestUser_BeforeSaveRejectsPlaintext(t *testing.T) {
	user := &models.User{PasswordHash: "password123"}
	err := user.BeforeSave(nil)
	assert.ErrorIs(t, err, models.ErrPlaintextPassword)

	user = &models.User{}
	err = user.BeforeSave(nil)
	assert.ErrorIs(t, err, models.ErrPlaintextPassword)

	user = &models.User{}
	assert.NoError(t, user.SetPassword("password123"))
	assert.NoError(t, user.BeforeSave(nil))
}
