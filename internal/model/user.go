package model

import "time"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse carries the id minted for a newly registered user.
type RegisterResponse struct {
	UserID string `json:"userId"`
}

// LoginResponse carries the bearer token issued at login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// ProfileResponse represents user data safe for API responses (no
// password hash).
type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
