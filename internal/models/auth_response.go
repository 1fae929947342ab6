package models

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Message string `json:"message"`
}

// LoginResponse represents the response after successful authentication
type LoginResponse struct {
	Token string `json:"token"` // JWT token
}
