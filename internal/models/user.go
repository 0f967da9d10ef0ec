package models

import (
	"time"
)

// User is the persistence shape of a user row.
// The users table carries a CHECK constraint keeping otp and otp_expires_at
// set or cleared together.
type User struct {
	UserID        string     `db:"user_id"`
	Name          string     `db:"name"`
	Email         string     `db:"email"`
	Phone         *string    `db:"phone"`
	PasswordHash  *string    `db:"password_hash"` // NULL for OAuth-only accounts
	ProfilePicURL *string    `db:"profile_pic_url"`
	Provider      string     `db:"provider"`
	GoogleID      *string    `db:"google_id"`
	GithubID      *string    `db:"github_id"`
	IsVerified    bool       `db:"is_verified"`
	OTP           *string    `db:"otp"`
	OTPExpiresAt  *time.Time `db:"otp_expires_at"`
	LoginCount    int64      `db:"login_count"`
	LastLoginAt   *time.Time `db:"last_login_at"`
	CreatedAt     time.Time  `db:"created_at"`
	LastUpdatedAt time.Time  `db:"last_updated_at"`
}
