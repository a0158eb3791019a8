package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/repository"
)

func newAuthFixture() *AuthService {
	return NewAuthService(newFakeUserRepo(), "test-secret", zerolog.Nop())
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "Alice", "password123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, "alice@example.com", "  ", "password123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, "alice@example.com", "Alice", "short")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Alice@Example.COM ", "Alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.ID.IsZero())
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, err = svc.Register(ctx, "alice@example.com", "Other Alice", "password456")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestLoginRoundTrip(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	signed, user, err := svc.Login(ctx, "Alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(signed, &claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, registered.ID.Hex(), claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrPermission)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrPermission)
}

func TestGetUserNotFound(t *testing.T) {
	svc := newAuthFixture()

	_, err := svc.GetUser(context.Background(), "ffffffffffffffffffffffff")
	assert.ErrorIs(t, err, ErrNotFound)
}
