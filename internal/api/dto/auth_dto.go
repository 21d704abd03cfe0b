package dto

import (
	"time"

	"github.com/spec-kit/ack-hub/internal/domain"
)

// LoginRequest payload for login and user switching.
type LoginRequest struct {
	Email string `json:"email"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IdentityResponse describes a resolved caller.
type IdentityResponse struct {
	Email           string      `json:"email"`
	DisplayName     string      `json:"display_name"`
	Role            domain.Role `json:"role"`
	Unit            string      `json:"unit,omitempty"`
	SupervisorEmail string      `json:"supervisor_email,omitempty"`
}
