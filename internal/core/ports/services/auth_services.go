package services

import (
	"context"
	"time"

	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	"github.com/craftmyfolio/cmf_backend/internal/dto"
)

// AuthSvcFacade is the single authoritative entry point for the signup,
// email-verification, login and password-reset flows. Handlers never touch
// the user repository directly for these operations.
type AuthSvcFacade interface {
	// SignUp persists an unverified user and dispatches a verification OTP.
	SignUp(ctx context.Context, req dto.SignupRequest) (*domain.User, error)

	// VerifyEmail validates the submitted OTP, marks the account verified and
	// mints a session token.
	VerifyEmail(ctx context.Context, email, otp string) (string, *domain.User, error)

	// ResendVerificationOTP replaces the OTP pair for an unverified account
	// and re-sends it.
	ResendVerificationOTP(ctx context.Context, email string) error

	// Login authenticates a verified local account and mints a session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// ForgotPassword issues a password-reset OTP for an existing account.
	ForgotPassword(ctx context.Context, email string) error

	// VerifyResetOTP validates the reset OTP and mints a purpose-tagged
	// reset token. The OTP is consumed on success.
	VerifyResetOTP(ctx context.Context, email, otp string) (string, error)

	// ResetPassword redeems a reset token and replaces the stored credential.
	ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error

	// LoginWithOAuth finds or creates a pre-verified account for an OAuth
	// identity, records the login and mints a session token.
	LoginWithOAuth(ctx context.Context, req dto.OAuthLoginRequest) (string, *domain.User, error)
}

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateSessionToken creates a new session JWT for the given user.
	GenerateSessionToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateResetToken creates a purpose-tagged password-reset JWT.
	GenerateResetToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateSessionToken validates a session token and returns the user ID.
	ValidateSessionToken(ctx context.Context, tokenString string) (string, error)

	// ValidateResetToken validates a reset token, including its purpose
	// claim, and returns the user ID.
	ValidateResetToken(ctx context.Context, tokenString string) (string, error)
}
