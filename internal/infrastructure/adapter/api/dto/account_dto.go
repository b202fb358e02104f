package dto

import "encoding/json"

// RegisterRequest represents the API request for registering a new user
type RegisterRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Balance  json.Number `json:"balance"`
}

// RegisterResponse represents the API response for a successful registration
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoginRequest represents the API request for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the API response for a successful login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// AccountResponse represents the authenticated caller's account record.
// The password hash is deliberately not part of this shape.
type AccountResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Balance  string `json:"balance"`
}
