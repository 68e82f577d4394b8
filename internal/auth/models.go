package auth

import "accounts/internal/users"

// RegisterRequest is the request payload for creating an account
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the request payload for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned after successful authentication
type LoginResult struct {
	User  *users.Profile
	Token string
}

// UserResponse wraps a public user view with a confirmation message
type UserResponse struct {
	Message string         `json:"message"`
	User    *users.Profile `json:"user"`
}
