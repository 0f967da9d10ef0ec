package domain

// GoogleUserInfo holds the fields we consume from Google's userinfo endpoint
// or a validated ID token payload.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GithubUserInfo holds the fields we consume from the GitHub /user endpoint.
// Email may be empty when the user keeps it private; it is then resolved via
// the /user/emails endpoint.
type GithubUserInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
