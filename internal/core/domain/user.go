package domain

import "time"

// AuthProvider identifies how an account was created.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
	ProviderGithub AuthProvider = "github"
)

// User represents one account in the domain.
//
// OTP and OTPExpiresAt are always set or cleared together; a verified user
// never carries an OTP. PasswordHash is empty for OAuth-only accounts, which
// never take the local-credential login path.
type User struct {
	UserID        string       `json:"userID"` // Primary key (UUID)
	Name          string       `json:"name"`
	Email         string       `json:"email"` // Unique, lower-cased, trimmed
	Phone         string       `json:"phone,omitempty"`
	PasswordHash  string       `json:"-"`
	ProfilePicURL *string      `json:"profilePicUrl,omitempty"`
	Provider      AuthProvider `json:"provider"`
	GoogleID      string       `json:"-"`
	GithubID      string       `json:"-"`

	IsVerified   bool       `json:"isVerified"`
	OTP          *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	LoginCount  int64      `json:"loginCount"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// HasValidOTP reports whether an OTP is on file and not yet expired at now.
func (u *User) HasValidOTP(now time.Time) bool {
	return u.OTP != nil && u.OTPExpiresAt != nil && !u.OTPExpiresAt.Before(now)
}
