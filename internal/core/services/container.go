package services

import (
	portsrepo "github.com/craftmyfolio/cmf_backend/internal/core/ports/repositories"
	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
	"github.com/craftmyfolio/cmf_backend/internal/platform/config"
	"github.com/craftmyfolio/cmf_backend/internal/platform/oauthstate"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, mailer portssvc.MailSenderSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(userRepo)
	container.Token = NewTokenService(cfg)
	container.Mailer = mailer
	container.Auth = NewAuthService(userRepo, container.Token, mailer, cfg.OTPExpiryDuration)

	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.GithubOAuthHandler = NewGithubOAuthHandlerService(cfg)
	container.OAuthState = oauthstate.NewStore(oauthstate.DefaultTTL)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.AuthSvcFacade               = (*authService)(nil)
	_ portssvc.TokenSvcFacade              = (*tokenService)(nil)
	_ portssvc.UserSvcFacade               = (*userService)(nil)
	_ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)
	_ portssvc.GithubOAuthHandlerSvcFacade = (*githubOAuthHandlerService)(nil)
)
