package service

import (
	"context"
	"testing"
	"time"

	"aptilab/internal/config"
	"aptilab/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthService_MissingKey(t *testing.T) {
	svc, err := NewAuthService(config.JWTConfig{})
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestAuthService_AccessTokenRoundTrip(t *testing.T) {
	svc, err := NewAuthService(config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: time.Minute})
	require.NoError(t, err)
	ctx := context.Background()
	user := &domain.User{ID: 42, Email: "ann@example.com"}

	token, err := svc.CreateAccessToken(ctx, user)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
}

func TestAuthService_ValidateJWT_Rejects(t *testing.T) {
	svc, err := NewAuthService(config.JWTConfig{SecretKey: "test-secret"})
	require.NoError(t, err)
	other, err := NewAuthService(config.JWTConfig{SecretKey: "other-secret"})
	require.NoError(t, err)
	ctx := context.Background()
	user := &domain.User{ID: 1, Email: "a@x.io"}

	expired, err := svc.CreateJWT(ctx, user, -time.Minute, tokenTypeAccess)
	require.NoError(t, err)
	refresh, err := svc.CreateJWT(ctx, user, time.Minute, "refresh")
	require.NoError(t, err)
	foreign, err := other.CreateAccessToken(ctx, user)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"email": "a@x.io"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":    expired,
		"wrong type": refresh,
		"wrong key":  foreign,
		"unsigned":   none,
		"garbage":    "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.ValidateJWT(ctx, token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidJWTToken)
		})
	}
}
