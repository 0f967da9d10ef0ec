package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/craftmyfolio/cmf_backend/internal/apperrors"
	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	portsrepo "github.com/craftmyfolio/cmf_backend/internal/core/ports/repositories"
	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
	"github.com/craftmyfolio/cmf_backend/internal/dto"
	"github.com/craftmyfolio/cmf_backend/internal/utils"
	"github.com/google/uuid"
)

// authService is the single authoritative implementation of the signup,
// verification, login and password-reset state machine. All handlers route
// through it so there is exactly one error-message policy.
type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	tokenSvc  portssvc.TokenSvcFacade
	mailer    portssvc.MailSenderSvc
	otpExpiry time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	tokenSvc portssvc.TokenSvcFacade,
	mailer portssvc.MailSenderSvc,
	otpExpiry time.Duration,
) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		tokenSvc:  tokenSvc,
		mailer:    mailer,
		otpExpiry: otpExpiry,
	}
}

// NormalizeEmail lower-cases and trims an email address so lookups and the
// unique constraint agree on identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp persists an unverified user with a fresh OTP pair and dispatches the
// verification email. The user row stays persisted even when the mail send
// fails; the client recovers via ResendVerificationOTP.
func (s *authService) SignUp(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	email := NormalizeEmail(req.Email)

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicate
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	otpExpiresAt := now.Add(s.otpExpiry)
	user := domain.User{
		UserID:        uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		Phone:         strings.TrimSpace(req.Phone),
		PasswordHash:  passwordHash,
		Provider:      domain.ProviderLocal,
		IsVerified:    false,
		OTP:           &otp,
		OTPExpiresAt:  &otpExpiresAt,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	if err := s.mailer.SendVerificationOTP(ctx, email, otp); err != nil {
		return nil, fmt.Errorf("failed to send verification OTP: %w", err)
	}

	return &user, nil
}

// VerifyEmail transitions an account from UNVERIFIED to VERIFIED when the
// submitted OTP matches and has not expired. The OTP pair is cleared together
// with the transition and a session token is minted.
func (s *authService) VerifyEmail(ctx context.Context, email, otp string) (string, *domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", nil, err
	}

	if err := checkOTP(user, otp); err != nil {
		return "", nil, err
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.UserID); err != nil {
		return "", nil, fmt.Errorf("failed to mark user verified: %w", err)
	}
	user.IsVerified = true
	user.OTP = nil
	user.OTPExpiresAt = nil

	token, _, err := s.tokenSvc.GenerateSessionToken(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	return token, user, nil
}

// ResendVerificationOTP overwrites the stored OTP pair for an unverified
// account, invalidating any previously issued code.
func (s *authService) ResendVerificationOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetOTP(ctx, user.UserID, otp, time.Now().Add(s.otpExpiry)); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.mailer.SendVerificationOTP(ctx, user.Email, otp); err != nil {
		return fmt.Errorf("failed to send verification OTP: %w", err)
	}
	return nil
}

// Login authenticates a verified local account. Unknown email, OAuth-only
// accounts and password mismatch all surface as ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsVerified {
		return "", nil, apperrors.ErrNotVerified
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.RecordLogin(ctx, user.UserID, now); err != nil {
		return "", nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LoginCount++
	user.LastLoginAt = &now

	token, _, err := s.tokenSvc.GenerateSessionToken(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	return token, user, nil
}

// ForgotPassword issues a reset OTP for an existing account. Unknown emails
// are reported as not found; the endpoint deliberately reveals existence.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetOTP(ctx, user.UserID, otp, time.Now().Add(s.otpExpiry)); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.mailer.SendPasswordResetOTP(ctx, user.Email, otp); err != nil {
		return fmt.Errorf("failed to send password reset OTP: %w", err)
	}
	return nil
}

// VerifyResetOTP validates the reset OTP and mints the purpose-tagged reset
// token. The OTP is consumed on success so it cannot be replayed while the
// reset token is outstanding.
func (s *authService) VerifyResetOTP(ctx context.Context, email, otp string) (string, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", err
	}

	if err := checkOTP(user, otp); err != nil {
		return "", err
	}

	token, _, err := s.tokenSvc.GenerateResetToken(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.userRepo.ClearOTP(ctx, user.UserID); err != nil {
		return "", fmt.Errorf("failed to consume OTP: %w", err)
	}
	return token, nil
}

// ResetPassword redeems a valid reset token and replaces the stored
// credential. Field validation runs before any token or store access.
func (s *authService) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: Passwords do not match", apperrors.ErrValidation)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: Password must be at least 6 characters long", apperrors.ErrValidation)
	}

	userID, err := s.tokenSvc.ValidateResetToken(ctx, resetToken)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, user.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// LoginWithOAuth finds or creates a pre-verified account for a validated
// OAuth identity and mints a session token. OAuth accounts skip the OTP flow
// entirely.
func (s *authService) LoginWithOAuth(ctx context.Context, req dto.OAuthLoginRequest) (string, *domain.User, error) {
	provider := domain.AuthProvider(req.Provider)
	if provider != domain.ProviderGoogle && provider != domain.ProviderGithub {
		return "", nil, fmt.Errorf("%w: unsupported provider %q", apperrors.ErrValidation, req.Provider)
	}
	if req.ProviderUserID == "" || req.Email == "" {
		return "", nil, fmt.Errorf("%w: provider identity incomplete", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByProviderID(ctx, provider, req.ProviderUserID)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Fall back to the email identity so an existing local account is not
		// duplicated by an OAuth login with the same address.
		user, err = s.userRepo.FindUserByEmail(ctx, NormalizeEmail(req.Email))
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		user, err = s.createOAuthUser(ctx, provider, req)
	}
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	if err := s.userRepo.RecordLogin(ctx, user.UserID, now); err != nil {
		return "", nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LoginCount++
	user.LastLoginAt = &now

	token, _, err := s.tokenSvc.GenerateSessionToken(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	return token, user, nil
}

func (s *authService) createOAuthUser(ctx context.Context, provider domain.AuthProvider, req dto.OAuthLoginRequest) (*domain.User, error) {
	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Name:          req.Name,
		Email:         NormalizeEmail(req.Email),
		Provider:      provider,
		IsVerified:    true, // provider already proved control of the email
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if req.ProfilePicURL != "" {
		pic := req.ProfilePicURL
		user.ProfilePicURL = &pic
	}
	switch provider {
	case domain.ProviderGoogle:
		user.GoogleID = req.ProviderUserID
	case domain.ProviderGithub:
		user.GithubID = req.ProviderUserID
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save oauth user: %w", err)
	}
	return &user, nil
}

// checkOTP applies the shared OTP validation rules: a pair must be on file,
// unexpired, and match in constant time.
func checkOTP(user *domain.User, otp string) error {
	if user.OTP == nil || user.OTPExpiresAt == nil {
		return apperrors.ErrOTPNotFound
	}
	if user.OTPExpiresAt.Before(time.Now()) {
		return apperrors.ErrOTPExpired
	}
	if !utils.SecureCompare(*user.OTP, otp) {
		return apperrors.ErrOTPMismatch
	}
	return nil
}
