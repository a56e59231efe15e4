package models

// Credentials is the login body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued on login.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserProfile is the account returned by /accounts/me and /accounts/users.
type UserProfile struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"list_of_roles"`
	Verified bool     `json:"is_verified"`
}

// HasAnyRole reports whether the profile holds at least one of allowed.
func (u UserProfile) HasAnyRole(allowed ...string) bool {
	for _, have := range u.Roles {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ResetPasswordRequest is the reset-password body. The token identifies the account.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// MessageResponse is the generic {"message": ...} acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
