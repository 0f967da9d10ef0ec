package services

import (
	"context"

	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetLoginURL returns the URL to redirect the user to for Google login.
	GetLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// GithubOAuthHandlerSvcFacade defines the interface for GitHub OAuth operations.
type GithubOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetLoginURL returns the URL to redirect the user to for GitHub login.
	GetLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from GitHub,
	// resolving a private primary email when necessary.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GithubUserInfo, error)
}

// OAuthStateStore keeps issued OAuth CSRF state strings with a TTL so the
// callback can confirm the flow originated here.
type OAuthStateStore interface {
	// Put records a state string until its TTL elapses.
	Put(state string)
	// Consume removes the state and reports whether it was present and fresh.
	Consume(state string) bool
}
