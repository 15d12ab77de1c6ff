package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWTService(accessTTL time.Duration) *JWTService {
	return NewJWTService(&JWTConfig{
		SecretKey:            []byte("test-secret"),
		AccessTokenDuration:  accessTTL,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "test",
	})
}

func TestJWT_GenerateAndValidate(t *testing.T) {
	service := newTestJWTService(time.Hour)

	token, err := service.GenerateAccessToken(42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "test", claims.Issuer)
}

func TestJWT_ExpiredToken(t *testing.T) {
	service := newTestJWTService(-time.Minute)

	token, err := service.GenerateAccessToken(42, "alice@example.com")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := newTestJWTService(time.Hour).GenerateAccessToken(42, "alice@example.com")
	require.NoError(t, err)

	other := NewJWTService(&JWTConfig{
		SecretKey:           []byte("different-secret"),
		AccessTokenDuration: time.Hour,
	})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_GarbageToken(t *testing.T) {
	service := newTestJWTService(time.Hour)

	_, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractTokenFromBearer(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromBearer("Bearer abc"))
	assert.Empty(t, ExtractTokenFromBearer("abc"))
	assert.Empty(t, ExtractTokenFromBearer("Bearer "))
	assert.Empty(t, ExtractTokenFromBearer(""))
}

func TestPassword_HashAndVerify(t *testing.T) {
	service := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := service.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, service.VerifyPassword(hash, "secret123"))
	assert.Error(t, service.VerifyPassword(hash, "wrong"))
}

func TestPassword_EmptyRejected(t *testing.T) {
	service := NewPasswordServiceWithCost(bcrypt.MinCost)

	_, err := service.HashPassword("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestIsValidPassword(t *testing.T) {
	assert.Error(t, IsValidPassword("short"))
	assert.NoError(t, IsValidPassword("secret123"))
	assert.Error(t, IsValidPassword(string(make([]byte, 129))))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, isValidEmail("alice@example.com"))
	assert.False(t, isValidEmail("alice"))
	assert.False(t, isValidEmail("alice@"))
	assert.False(t, isValidEmail("@example.com"))
	assert.False(t, isValidEmail("a b@example.com"))
}
