package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
	"github.com/craftmyfolio/cmf_backend/internal/platform/config"
	"github.com/craftmyfolio/cmf_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// githubOAuthHandlerService implements the GithubOAuthHandlerSvcFacade.
type githubOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGithubOAuthHandlerService creates a new instance of githubOAuthHandlerService.
func NewGithubOAuthHandlerService(cfg *config.Config) portssvc.GithubOAuthHandlerSvcFacade {
	return &githubOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			RedirectURL:  cfg.GithubRedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *githubOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetLoginURL returns the URL to redirect the user to for GitHub login.
func (s *githubOAuthHandlerService) GetLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *githubOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// GetUserInfo fetches the authenticated user from the GitHub API. When the
// profile email is private it falls back to the primary verified address
// from /user/emails.
func (s *githubOAuthHandlerService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GithubUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)

	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api returned non-200 status for user: %s", resp.Status)
	}

	var userInfo domain.GithubUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info from github: %w", err)
	}

	if userInfo.Email == "" {
		email, err := s.fetchPrimaryEmail(ctx, client)
		if err != nil {
			return nil, err
		}
		userInfo.Email = email
	}
	if userInfo.Name == "" {
		userInfo.Name = userInfo.Login
	}

	return &userInfo, nil
}

func (s *githubOAuthHandlerService) fetchPrimaryEmail(ctx context.Context, client *http.Client) (string, error) {
	resp, err := client.Get("https://api.github.com/user/emails")
	if err != nil {
		return "", fmt.Errorf("failed to get user emails from github: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api returned non-200 status for user emails: %s", resp.Status)
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", fmt.Errorf("failed to decode user emails from github: %w", err)
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", fmt.Errorf("no primary verified email on github account")
}
