package services

import (
	"context"
	"time"

	"github.com/craftmyfolio/cmf_backend/internal/apperrors"
	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
	"github.com/craftmyfolio/cmf_backend/internal/platform/config"
	"github.com/craftmyfolio/cmf_backend/internal/utils"
)

// tokenService implements the TokenSvcFacade for session and reset JWTs.
// It requires access to application configuration for secrets and expiry times.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateSessionToken creates a new session JWT for the given user.
func (s *tokenService) GenerateSessionToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiryTime, nil
}

// GenerateResetToken creates a purpose-tagged password-reset JWT for the given user.
func (s *tokenService) GenerateResetToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.ResetTokenExpiryDuration)

	token, err := utils.GenerateResetJWT(user.UserID, s.cfg.JWTSecret, s.cfg.ResetTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiryTime, nil
}

// ValidateSessionToken validates a session token and returns the subject user ID.
func (s *tokenService) ValidateSessionToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}

// ValidateResetToken validates a reset token, including its purpose claim,
// and returns the subject user ID. A session token has no purpose claim and
// always fails here.
func (s *tokenService) ValidateResetToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateResetJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", apperrors.ErrInvalidResetToken
	}
	if claims.Subject == "" {
		return "", apperrors.ErrInvalidResetToken
	}
	return claims.Subject, nil
}
