package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftmyfolio/cmf_backend/internal/apperrors"
	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	"github.com/craftmyfolio/cmf_backend/internal/core/services"
	"github.com/craftmyfolio/cmf_backend/internal/platform/config"
)

func newTestTokenConfig() *config.Config {
	return &config.Config{
		JWTSecret:                "test-secret-key",
		JWTExpiryDuration:        time.Hour,
		JWTIssuer:                "craftmyfolio-test",
		ResetTokenExpiryDuration: 15 * time.Minute,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := services.NewTokenService(newTestTokenConfig())
	ctx := context.Background()
	user := &domain.User{UserID: "user-42"}

	token, expiresAt, err := svc.GenerateSessionToken(ctx, user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := svc.ValidateSessionToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestSessionTokenRejectedByResetValidation(t *testing.T) {
	svc := services.NewTokenService(newTestTokenConfig())
	ctx := context.Background()

	token, _, err := svc.GenerateSessionToken(ctx, &domain.User{UserID: "user-42"})
	require.NoError(t, err)

	_, err = svc.ValidateResetToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestResetTokenRoundTrip(t *testing.T) {
	svc := services.NewTokenService(newTestTokenConfig())
	ctx := context.Background()

	token, expiresAt, err := svc.GenerateResetToken(ctx, &domain.User{UserID: "user-42"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	userID, err := svc.ValidateResetToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestValidateSessionTokenRejectsTamperedToken(t *testing.T) {
	svc := services.NewTokenService(newTestTokenConfig())
	otherSvc := services.NewTokenService(&config.Config{
		JWTSecret:                "a-different-secret",
		JWTExpiryDuration:        time.Hour,
		JWTIssuer:                "craftmyfolio-test",
		ResetTokenExpiryDuration: 15 * time.Minute,
	})
	ctx := context.Background()

	token, _, err := otherSvc.GenerateSessionToken(ctx, &domain.User{UserID: "user-42"})
	require.NoError(t, err)

	_, err = svc.ValidateSessionToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.ValidateSessionToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestValidateResetTokenRejectsExpiredToken(t *testing.T) {
	cfg := newTestTokenConfig()
	cfg.ResetTokenExpiryDuration = -time.Minute
	svc := services.NewTokenService(cfg)
	ctx := context.Background()

	token, _, err := svc.GenerateResetToken(ctx, &domain.User{UserID: "user-42"})
	require.NoError(t, err)

	_, err = svc.ValidateResetToken(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}
