package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/craftmyfolio/cmf_backend/cmd/docs"
	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
	"github.com/craftmyfolio/cmf_backend/internal/middleware"
	"github.com/craftmyfolio/cmf_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route
	r.GET("/health", GetHealth)

	registerAuthRoutes(r, cfg, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerAuthRoutes sets up the public auth routes and the token-protected
// profile route under /api/auth.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	authHandler := NewAuthHandler(services.Auth)
	userHandler := NewUserHandler(services.User)
	googleHandler := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.Auth, services.OAuthState, cfg.FrontendBaseURL)
	githubHandler := NewGithubOAuthHandler(services.GithubOAuthHandler, services.Auth, services.OAuthState, cfg.FrontendBaseURL)

	// Rate limit the credential and OTP endpoints: 5 requests per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", limitMiddleware, authHandler.Signup)
		auth.POST("/login", limitMiddleware, authHandler.Login)
		auth.POST("/verify-email", limitMiddleware, authHandler.VerifyEmail)
		auth.POST("/resend-verification-otp", limitMiddleware, authHandler.ResendVerificationOTP)
		auth.POST("/forgot-password", limitMiddleware, authHandler.ForgotPassword)
		auth.POST("/verify-reset-otp", limitMiddleware, authHandler.VerifyResetOTP)
		auth.POST("/reset-password", limitMiddleware, authHandler.ResetPassword)

		auth.GET("/google", googleHandler.RedirectToGoogle)
		auth.GET("/google/callback", googleHandler.CallbackGoogle)
		auth.GET("/github", githubHandler.RedirectToGithub)
		auth.GET("/github/callback", githubHandler.CallbackGithub)

		auth.GET("/profile", middleware.AuthMiddleware(cfg.JWTSecret), userHandler.GetProfile)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
