package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the payload returned by authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Username echoes the authenticated account name
	Username string `json:"username"`

	// Roles lists the account's roles
	Roles []string `json:"roles"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title        string     `json:"title"        validate:"required,min=3,max=200"`
	Description  string     `json:"description"  validate:"max=1000"`
	Priority     *string    `json:"priority"     validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	AssignedToID *uuid.UUID `json:"assigned_to_id"`
	DueDate      *time.Time `json:"due_date"`
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent fields leave the task unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *time.Time `json:"due_date"`
}

// AssignTaskRequest defines the payload for assigning a task to a user.
type AssignTaskRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// UpdateTaskStatusRequest defines the payload for a status transition.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE CANCELLED"`
}

// UnreadCountResponse carries the unread notification counter.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}
