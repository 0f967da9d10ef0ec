package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/craftmyfolio/cmf_backend/internal/apperrors"
	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	"github.com/craftmyfolio/cmf_backend/internal/dto"
	"github.com/craftmyfolio/cmf_backend/internal/handlers"
)

// --- Mock AuthService ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, otp string) (string, *domain.User, error) {
	args := m.Called(ctx, email, otp)
	var user *domain.User
	if args.Get(1) != nil {
		user = args.Get(1).(*domain.User)
	}
	return args.String(0), user, args.Error(2)
}

func (m *MockAuthService) ResendVerificationOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	var user *domain.User
	if args.Get(1) != nil {
		user = args.Get(1).(*domain.User)
	}
	return args.String(0), user, args.Error(2)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) VerifyResetOTP(ctx context.Context, email, otp string) (string, error) {
	args := m.Called(ctx, email, otp)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) error {
	args := m.Called(ctx, resetToken, newPassword, confirmPassword)
	return args.Error(0)
}

func (m *MockAuthService) LoginWithOAuth(ctx context.Context, req dto.OAuthLoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	if args.Get(1) != nil {
		user = args.Get(1).(*domain.User)
	}
	return args.String(0), user, args.Error(2)
}

// --- Suite ---

type AuthHandlerTestSuite struct {
	suite.Suite
	authSvc *MockAuthService
	router  *gin.Engine
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.authSvc = new(MockAuthService)
	handler := handlers.NewAuthHandler(s.authSvc)

	s.router = gin.New()
	auth := s.router.Group("/api/auth")
	auth.POST("/signup", handler.Signup)
	auth.POST("/login", handler.Login)
	auth.POST("/verify-email", handler.VerifyEmail)
	auth.POST("/resend-verification-otp", handler.ResendVerificationOTP)
	auth.POST("/forgot-password", handler.ForgotPassword)
	auth.POST("/verify-reset-otp", handler.VerifyResetOTP)
	auth.POST("/reset-password", handler.ResetPassword)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerTestSuite) decodeBody(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sampleUser() *domain.User {
	now := time.Now()
	return &domain.User{
		UserID:      "user-1",
		Name:        "Ann",
		Email:       "ann@x.com",
		Provider:    domain.ProviderLocal,
		IsVerified:  true,
		LoginCount:  3,
		LastLoginAt: &now,
	}
}

// --- Signup ---

func (s *AuthHandlerTestSuite) TestSignupSuccess() {
	s.authSvc.On("SignUp", mock.Anything, mock.AnythingOfType("dto.SignupRequest")).
		Return(&domain.User{UserID: "user-1", Email: "ann@x.com"}, nil)

	w := s.postJSON("/api/auth/signup", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret1"})

	s.Equal(http.StatusCreated, w.Code)
	body := s.decodeBody(w)
	s.Equal("ann@x.com", body["email"])
	s.Equal(true, body["requiresVerification"])
}

func (s *AuthHandlerTestSuite) TestSignupMissingFields() {
	w := s.postJSON("/api/auth/signup", gin.H{"email": "ann@x.com"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("All fields are required", s.decodeBody(w)["error"])
	s.authSvc.AssertNotCalled(s.T(), "SignUp", mock.Anything, mock.Anything)
}

func (s *AuthHandlerTestSuite) TestSignupDuplicateEmail() {
	s.authSvc.On("SignUp", mock.Anything, mock.AnythingOfType("dto.SignupRequest")).
		Return(nil, apperrors.ErrDuplicate)

	w := s.postJSON("/api/auth/signup", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret1"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("User already exists", s.decodeBody(w)["error"])
}

func (s *AuthHandlerTestSuite) TestSignupMailFailureIsServerError() {
	s.authSvc.On("SignUp", mock.Anything, mock.AnythingOfType("dto.SignupRequest")).
		Return(nil, errors.New("smtp: connection refused"))

	w := s.postJSON("/api/auth/signup", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret1"})

	s.Equal(http.StatusInternalServerError, w.Code)
}

// --- Login ---

func (s *AuthHandlerTestSuite) TestLoginSuccess() {
	s.authSvc.On("Login", mock.Anything, "ann@x.com", "secret1").
		Return("a.jwt.token", sampleUser(), nil)

	w := s.postJSON("/api/auth/login", gin.H{"email": "ann@x.com", "password": "secret1"})

	s.Equal(http.StatusOK, w.Code)
	body := s.decodeBody(w)
	s.Equal("a.jwt.token", body["token"])
	user := body["user"].(map[string]any)
	s.Equal("user-1", user["id"])
	s.Equal(float64(3), user["loginCount"])
}

func (s *AuthHandlerTestSuite) TestLoginInvalidCredentials() {
	s.authSvc.On("Login", mock.Anything, "ann@x.com", "wrong").
		Return("", nil, apperrors.ErrInvalidCredentials)

	w := s.postJSON("/api/auth/login", gin.H{"email": "ann@x.com", "password": "wrong"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid credentials", s.decodeBody(w)["error"])
}

func (s *AuthHandlerTestSuite) TestLoginUnverifiedAccountSignalsVerification() {
	s.authSvc.On("Login", mock.Anything, "Ann@X.com", "secret1").
		Return("", nil, apperrors.ErrNotVerified)

	w := s.postJSON("/api/auth/login", gin.H{"email": "Ann@X.com", "password": "secret1"})

	s.Equal(http.StatusBadRequest, w.Code)
	body := s.decodeBody(w)
	s.Equal("Please verify your email first", body["error"])
	s.Equal(true, body["requiresVerification"])
	s.Equal("ann@x.com", body["email"])
}

// --- VerifyEmail ---

func (s *AuthHandlerTestSuite) TestVerifyEmailSuccess() {
	s.authSvc.On("VerifyEmail", mock.Anything, "ann@x.com", "483920").
		Return("a.jwt.token", sampleUser(), nil)

	w := s.postJSON("/api/auth/verify-email", gin.H{"email": "ann@x.com", "otp": "483920"})

	s.Equal(http.StatusOK, w.Code)
	s.Equal("a.jwt.token", s.decodeBody(w)["token"])
}

func (s *AuthHandlerTestSuite) TestVerifyEmailOTPErrors() {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.ErrNotFound, http.StatusNotFound, "User not found"},
		{apperrors.ErrOTPNotFound, http.StatusBadRequest, "No OTP found. Please request a new one."},
		{apperrors.ErrOTPExpired, http.StatusBadRequest, "OTP has expired. Please request a new one."},
		{apperrors.ErrOTPMismatch, http.StatusBadRequest, "Invalid OTP"},
	}

	for _, tc := range cases {
		s.SetupTest()
		s.authSvc.On("VerifyEmail", mock.Anything, "ann@x.com", "483920").
			Return("", nil, tc.err)

		w := s.postJSON("/api/auth/verify-email", gin.H{"email": "ann@x.com", "otp": "483920"})

		s.Equal(tc.status, w.Code)
		s.Equal(tc.message, s.decodeBody(w)["error"])
	}
}

func (s *AuthHandlerTestSuite) TestVerifyEmailRejectsMalformedOTP() {
	w := s.postJSON("/api/auth/verify-email", gin.H{"email": "ann@x.com", "otp": "12ab56"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.authSvc.AssertNotCalled(s.T(), "VerifyEmail", mock.Anything, mock.Anything, mock.Anything)
}

// --- Resend / Forgot ---

func (s *AuthHandlerTestSuite) TestResendAlreadyVerified() {
	s.authSvc.On("ResendVerificationOTP", mock.Anything, "ann@x.com").
		Return(apperrors.ErrAlreadyVerified)

	w := s.postJSON("/api/auth/resend-verification-otp", gin.H{"email": "ann@x.com"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Email is already verified", s.decodeBody(w)["error"])
}

func (s *AuthHandlerTestSuite) TestForgotPasswordSuccess() {
	s.authSvc.On("ForgotPassword", mock.Anything, "ann@x.com").Return(nil)

	w := s.postJSON("/api/auth/forgot-password", gin.H{"email": "ann@x.com"})

	s.Equal(http.StatusOK, w.Code)
	s.Equal("Password reset OTP sent to your email", s.decodeBody(w)["message"])
}

func (s *AuthHandlerTestSuite) TestForgotPasswordUnknownUser() {
	s.authSvc.On("ForgotPassword", mock.Anything, "ghost@x.com").
		Return(apperrors.ErrNotFound)

	w := s.postJSON("/api/auth/forgot-password", gin.H{"email": "ghost@x.com"})

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("User not found", s.decodeBody(w)["error"])
}

// --- Reset flow ---

func (s *AuthHandlerTestSuite) TestVerifyResetOTPSuccess() {
	s.authSvc.On("VerifyResetOTP", mock.Anything, "ann@x.com", "654321").
		Return("reset.jwt.token", nil)

	w := s.postJSON("/api/auth/verify-reset-otp", gin.H{"email": "ann@x.com", "otp": "654321"})

	s.Equal(http.StatusOK, w.Code)
	s.Equal("reset.jwt.token", s.decodeBody(w)["resetToken"])
}

func (s *AuthHandlerTestSuite) TestResetPasswordSuccess() {
	s.authSvc.On("ResetPassword", mock.Anything, "reset.jwt.token", "newpass1", "newpass1").
		Return(nil)

	w := s.postJSON("/api/auth/reset-password", gin.H{
		"resetToken":      "reset.jwt.token",
		"newPassword":     "newpass1",
		"confirmPassword": "newpass1",
	})

	s.Equal(http.StatusOK, w.Code)
}

func (s *AuthHandlerTestSuite) TestResetPasswordValidationMessageIsUnwrapped() {
	s.authSvc.On("ResetPassword", mock.Anything, "reset.jwt.token", "newpass1", "different").
		Return(fmt.Errorf("%w: Passwords do not match", apperrors.ErrValidation))

	w := s.postJSON("/api/auth/reset-password", gin.H{
		"resetToken":      "reset.jwt.token",
		"newPassword":     "newpass1",
		"confirmPassword": "different",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Passwords do not match", s.decodeBody(w)["error"])
}

func (s *AuthHandlerTestSuite) TestResetPasswordInvalidToken() {
	s.authSvc.On("ResetPassword", mock.Anything, "bad-token", "newpass1", "newpass1").
		Return(apperrors.ErrInvalidResetToken)

	w := s.postJSON("/api/auth/reset-password", gin.H{
		"resetToken":      "bad-token",
		"newPassword":     "newpass1",
		"confirmPassword": "newpass1",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid or expired reset token", s.decodeBody(w)["error"])
}
