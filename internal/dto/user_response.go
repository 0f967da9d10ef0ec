package dto

import (
	"time"

	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
)

// UserResponse is the public projection of a user. Credential and OTP fields
// never leave the service.
type UserResponse struct {
	UserID        string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	ProfilePicURL *string    `json:"profilePic,omitempty"`
	Provider      string     `json:"provider"`
	IsVerified    bool       `json:"isVerified"`
	LoginCount    int64      `json:"loginCount"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

// ToUserResponse converts a domain.User to its public projection.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		ProfilePicURL: user.ProfilePicURL,
		Provider:      string(user.Provider),
		IsVerified:    user.IsVerified,
		LoginCount:    user.LoginCount,
		LastLoginAt:   user.LastLoginAt,
	}
}

// ProfileResponse wraps the user for GET /api/auth/profile.
type ProfileResponse struct {
	User UserResponse `json:"user"`
}
