package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shortly/internal/auth"
	"shortly/internal/service"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := auth.NewTokenService("signing-key", 2*time.Hour).WithClock(fixedClock)
	svc := service.NewAuthService(tokens, "ops", string(hash), service.WithClock(fixedClock))

	token, err := svc.Login(context.Background(), "ops", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ops", token.Subject)
	assert.Equal(t, testNow.Add(2*time.Hour), token.ExpiresAt)

	claims, err := tokens.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)

	_, err = svc.Login(context.Background(), "ops", "wrong")
	assert.True(t, service.IsKind(err, service.KindUnauthorized))

	_, err = svc.Login(context.Background(), "root", "s3cret-pass")
	assert.True(t, service.IsKind(err, service.KindUnauthorized))
}

func TestAuthService_Disabled(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	noHash := service.NewAuthService(auth.NewTokenService("signing-key", time.Hour), "ops", "")
	_, err = noHash.Login(context.Background(), "ops", "s3cret-pass")
	assert.True(t, service.IsKind(err, service.KindUnavailable))

	noSecret := service.NewAuthService(auth.NewTokenService("", time.Hour), "ops", string(hash))
	_, err = noSecret.Login(context.Background(), "ops", "s3cret-pass")
	assert.True(t, service.IsKind(err, service.KindUnavailable))
}

func TestHashPassword(t *testing.T) {
	hash, err := service.HashPassword("long-enough")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("long-enough")))

	_, err = service.HashPassword("short")
	assert.True(t, service.IsKind(err, service.KindValidation))
}
