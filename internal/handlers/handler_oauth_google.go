package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
	"github.com/craftmyfolio/cmf_backend/internal/dto"
	"github.com/craftmyfolio/cmf_backend/internal/middleware"
)

// GoogleOAuthHandler handles Google OAuth related requests.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
	stateStore         portssvc.OAuthStateStore
	frontendBaseURL    string
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	authService portssvc.AuthSvcFacade,
	stateStore portssvc.OAuthStateStore,
	frontendBaseURL string,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		authService:        authService,
		stateStore:         stateStore,
		frontendBaseURL:    frontendBaseURL,
	}
}

// RedirectToGoogle godoc
// @Summary Start Google OAuth login
// @Description Redirects the browser to Google's consent screen with a CSRF state.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [get]
func (h *GoogleOAuthHandler) RedirectToGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}
	h.stateStore.Put(state)

	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetLoginURL(ctx, state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Validates state and ID token, logs the user in and redirects to the frontend with a session token.
// @Tags oauth
// @Success 307
// @Failure 400 {object} ErrorResponse "Invalid state or code"
// @Failure 401 {object} ErrorResponse "ID token validation failed"
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	if !h.stateStore.Consume(c.Query("state")) {
		logger.Warn("OAuth state missing or expired")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	token, _, err := h.authService.LoginWithOAuth(ctx, dto.OAuthLoginRequest{
		Provider:       "google",
		ProviderUserID: payload.Subject,
		Email:          email,
		Name:           name,
		ProfilePicURL:  picture,
	})
	if err != nil {
		logger.Error("Google login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in with Google"})
		return
	}

	redirectWithToken(c, h.frontendBaseURL, token)
}

// redirectWithToken sends the browser back to the frontend with the session
// token in the fragment-free query, matching what the frontend callback page
// expects.
func redirectWithToken(c *gin.Context, frontendBaseURL, token string) {
	target := fmt.Sprintf("%s/auth/callback?token=%s", frontendBaseURL, url.QueryEscape(token))
	c.Redirect(http.StatusTemporaryRedirect, target)
}
