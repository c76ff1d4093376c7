package models

// LoginResponse carries the session token issued on a successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// ProfileResponse is the public view of a user profile
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ForgotPasswordResponse is always success-shaped so callers cannot tell
// whether the email exists. ResetLink is only set in the development
// fallback when no mail transport is configured.
type ForgotPasswordResponse struct {
	Message   string `json:"message"`
	ResetLink string `json:"reset_link,omitempty"`
}
