package dto

// SignupRequest is the body for POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

// SignupResponse confirms registration and signals the verification step.
type SignupResponse struct {
	Message              string `json:"message"`
	Email                string `json:"email"`
	RequiresVerification bool   `json:"requiresVerification"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the user's public profile.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// VerifyEmailRequest is the body for POST /api/auth/verify-email.
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// EmailRequest is the body for the endpoints that take only an email
// (resend-verification-otp, forgot-password).
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyResetOTPRequest is the body for POST /api/auth/verify-reset-otp.
type VerifyResetOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// VerifyResetOTPResponse carries the short-lived reset token.
type VerifyResetOTPResponse struct {
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

// ResetPasswordRequest is the body for POST /api/auth/reset-password.
// Confirmation matching and length are re-checked in the service so the rule
// holds regardless of transport.
type ResetPasswordRequest struct {
	ResetToken      string `json:"resetToken" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// MessageResponse is the generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// OAuthLoginRequest carries a validated OAuth identity into the auth service.
// It is built server-side from provider responses, never bound from a client
// request body.
type OAuthLoginRequest struct {
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
	ProfilePicURL  string
}
