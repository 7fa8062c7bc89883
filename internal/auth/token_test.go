package auth_test

import (
	"testing"
	"time"

	"butik/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := auth.NewTokenIssuer("test_jwt_secret")

	token, err := issuer.Issue("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenIssuer_VerifyTampered(t *testing.T) {
	issuer := auth.NewTokenIssuer("test_jwt_secret")

	token, err := issuer.Issue("user-123")
	assert.NoError(t, err)

	// Flip one byte in the payload; the signature no longer matches.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = issuer.Verify(string(tampered))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_VerifyWrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test_jwt_secret")
	other := auth.NewTokenIssuer("another_secret")

	token, err := issuer.Issue("user-123")
	assert.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_VerifyMalformed(t *testing.T) {
	issuer := auth.NewTokenIssuer("test_jwt_secret")

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(tokenString)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	}
}

func TestTokenIssuer_VerifyExpired(t *testing.T) {
	issuer := auth.NewTokenIssuer("test_jwt_secret")

	token, err := issuer.Issue("user-123")
	assert.NoError(t, err)

	// Advance the library clock past the fixed TTL.
	jwt.TimeFunc = func() time.Time { return time.Now().Add(auth.TokenTTL + time.Minute) }
	defer func() { jwt.TimeFunc = time.Now }()

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_VerifyMissingSubject(t *testing.T) {
	// A validly signed token without a user_id claim must still be rejected.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := raw.SignedString([]byte("test_jwt_secret"))
	assert.NoError(t, err)

	issuer := auth.NewTokenIssuer("test_jwt_secret")
	_, err = issuer.Verify(tokenString)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
