package dto

import "github.com/promptstash/promptstash/internal/apiserver/database"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string         `json:"token"`
	User  *database.User `json:"user"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// WorkspaceSummary is one workspace the user belongs to
type WorkspaceSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

// SessionResponse describes the authenticated user and the workspace the
// session is bound to
type SessionResponse struct {
	User            *database.User     `json:"user"`
	ActiveWorkspace *WorkspaceSummary  `json:"activeWorkspace"`
	Workspaces      []WorkspaceSummary `json:"workspaces"`
}
