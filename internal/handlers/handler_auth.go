package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/craftmyfolio/cmf_backend/internal/apperrors"
	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
	"github.com/craftmyfolio/cmf_backend/internal/dto"
	"github.com/craftmyfolio/cmf_backend/internal/middleware"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService portssvc.AuthSvcFacade) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Signup godoc
// @Summary Register a new account
// @Description Creates an unverified user and emails a 6-digit verification OTP.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Registration Info"
// @Success 201 {object} dto.SignupResponse
// @Failure 400 {object} ErrorResponse "Missing fields or duplicate email"
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All fields are required"})
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User already exists"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Signup failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{
		Message:              "User registered. Please verify your email with the OTP sent to your email address.",
		Email:                user.Email,
		RequiresVerification: true,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a verified account and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid credentials or unverified account"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password are required"})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid credentials"})
		case errors.Is(err, apperrors.ErrNotVerified):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":                "Please verify your email first",
				"requiresVerification": true,
				"email":                strings.ToLower(strings.TrimSpace(req.Email)),
			})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Login failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// VerifyEmail godoc
// @Summary Verify email with OTP
// @Description Confirms the signup OTP, marks the account verified and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Email and OTP"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "No OTP, expired OTP or mismatch"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and OTP are required"})
		return
	}

	token, user, err := h.authService.VerifyEmail(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		h.respondOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: "Email verified successfully! You can now login.",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// ResendVerificationOTP godoc
// @Summary Resend verification OTP
// @Description Replaces the pending OTP for an unverified account and re-sends it.
// @Tags auth
// @Accept json
// @Produce json
// @Param resend body dto.EmailRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Already verified"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse
// @Router /auth/resend-verification-otp [post]
func (h *AuthHandler) ResendVerificationOTP(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email is required"})
		return
	}

	if err := h.authService.ResendVerificationOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		case errors.Is(err, apperrors.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email is already verified"})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Resend verification OTP failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resend verification OTP"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Verification OTP resent successfully"})
}

// ForgotPassword godoc
// @Summary Request a password-reset OTP
// @Description Issues a 10-minute OTP and emails it. Reveals account existence by design.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.EmailRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email is required"})
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Forgot password failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send password reset OTP"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset OTP sent to your email"})
}

// VerifyResetOTP godoc
// @Summary Verify password-reset OTP
// @Description Confirms the reset OTP and returns a 15-minute purpose-tagged reset token.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyResetOTPRequest true "Email and OTP"
// @Success 200 {object} dto.VerifyResetOTPResponse
// @Failure 400 {object} ErrorResponse "No OTP, expired OTP or mismatch"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify-reset-otp [post]
func (h *AuthHandler) VerifyResetOTP(c *gin.Context) {
	var req dto.VerifyResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and OTP are required"})
		return
	}

	resetToken, err := h.authService.VerifyResetOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		h.respondOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResetOTPResponse{
		Message:    "OTP verified. You can now reset your password.",
		ResetToken: resetToken,
	})
}

// ResetPassword godoc
// @Summary Reset password
// @Description Redeems a valid reset token and replaces the account password.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Mismatch, weak password or invalid token"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All fields are required"})
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), req.ResetToken, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationMessage(err)})
		case errors.Is(err, apperrors.ErrInvalidResetToken):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired reset token"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Reset password failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successfully. You can now login with your new password."})
}

// respondOTPError maps the shared OTP failure taxonomy onto HTTP responses.
// Each case carries a distinct user-facing message; all are terminal for the
// attempt.
func (h *AuthHandler) respondOTPError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
	case errors.Is(err, apperrors.ErrOTPNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No OTP found. Please request a new one."})
	case errors.Is(err, apperrors.ErrOTPExpired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "OTP has expired. Please request a new one."})
	case errors.Is(err, apperrors.ErrOTPMismatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OTP"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("OTP verification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
}

// validationMessage strips the sentinel prefix from a wrapped validation
// error so the client sees only the human-readable part.
func validationMessage(err error) string {
	msg := err.Error()
	if cut, found := strings.CutPrefix(msg, apperrors.ErrValidation.Error()+": "); found {
		return cut
	}
	return msg
}
