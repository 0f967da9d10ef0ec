package repositories

import (
	"context"
	"time"

	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their normalized email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderID retrieves a user by OAuth provider and the
	// provider's own user identifier.
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// SetOTP stores a freshly issued OTP and its expiry, replacing any
	// previous pair. The two columns always move together.
	SetOTP(ctx context.Context, userID string, otp string, expiresAt time.Time) error

	// ClearOTP removes the OTP pair without touching anything else.
	ClearOTP(ctx context.Context, userID string) error

	// MarkEmailVerified sets the verified flag and clears the OTP pair in a
	// single statement.
	MarkEmailVerified(ctx context.Context, userID string) error

	// RecordLogin increments the login counter and stamps the login time.
	RecordLogin(ctx context.Context, userID string, at time.Time) error

	// UpdatePasswordHash replaces the stored credential and clears the OTP
	// pair in a single statement.
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
