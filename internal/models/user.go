package models

// User identifies the authenticated principal. Immutable for the lifetime
// of a session; replaced wholesale on the next login.
type User struct {
	ID       int64  `json:"id" example:"1"`
	Email    string `json:"email" example:"user@example.com"`
	Username string `json:"username" example:"johndoe"`
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"password123"`
}
