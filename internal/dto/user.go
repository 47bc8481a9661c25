package dto

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"required,phone"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Address  string `json:"address" binding:"omitempty,max=255"`
}

// LoginRequest carries no binding tags: presence is checked by hand so a
// missing field produces the endpoint's own generic message instead of a
// field-level validation map.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UserResponse is the public projection of a user. The password hash is
// never part of it.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}
