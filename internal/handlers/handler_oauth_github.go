package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
	"github.com/craftmyfolio/cmf_backend/internal/dto"
	"github.com/craftmyfolio/cmf_backend/internal/middleware"
)

// GithubOAuthHandler handles GitHub OAuth related requests.
type GithubOAuthHandler struct {
	githubOAuthService portssvc.GithubOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
	stateStore         portssvc.OAuthStateStore
	frontendBaseURL    string
}

// NewGithubOAuthHandler creates a new instance of GithubOAuthHandler.
func NewGithubOAuthHandler(
	githubOAuthService portssvc.GithubOAuthHandlerSvcFacade,
	authService portssvc.AuthSvcFacade,
	stateStore portssvc.OAuthStateStore,
	frontendBaseURL string,
) *GithubOAuthHandler {
	return &GithubOAuthHandler{
		githubOAuthService: githubOAuthService,
		authService:        authService,
		stateStore:         stateStore,
		frontendBaseURL:    frontendBaseURL,
	}
}

// RedirectToGithub godoc
// @Summary Start GitHub OAuth login
// @Description Redirects the browser to GitHub's authorize page with a CSRF state.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/github [get]
func (h *GithubOAuthHandler) RedirectToGithub(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.githubOAuthService.GenerateStateString(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start GitHub login"})
		return
	}
	h.stateStore.Put(state)

	c.Redirect(http.StatusTemporaryRedirect, h.githubOAuthService.GetLoginURL(ctx, state))
}

// CallbackGithub godoc
// @Summary GitHub OAuth callback
// @Description Validates state, fetches the GitHub identity, logs the user in and redirects to the frontend with a session token.
// @Tags oauth
// @Success 307
// @Failure 400 {object} ErrorResponse "Invalid state or code"
// @Router /auth/github/callback [get]
func (h *GithubOAuthHandler) CallbackGithub(c *gin.Context) {
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

	oauth2Token, err := h.githubOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with GitHub", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	userInfo, err := h.githubOAuthService.GetUserInfo(ctx, oauth2Token)
	if err != nil {
		logger.Error("Failed to fetch GitHub user info", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to fetch user info from GitHub"})
		return
	}

	token, _, err := h.authService.LoginWithOAuth(ctx, dto.OAuthLoginRequest{
		Provider:       "github",
		ProviderUserID: strconv.FormatInt(userInfo.ID, 10),
		Email:          userInfo.Email,
		Name:           userInfo.Name,
		ProfilePicURL:  userInfo.AvatarURL,
	})
	if err != nil {
		logger.Error("GitHub login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in with GitHub"})
		return
	}

	redirectWithToken(c, h.frontendBaseURL, token)
}
