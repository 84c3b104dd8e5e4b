package dto

import "time"

// CreateWorkspaceRequest is the payload for creating a workspace
type CreateWorkspaceRequest struct {
	Name           string   `json:"name" binding:"required"`
	CustomStatuses []string `json:"custom_statuses,omitempty"`
}

// AddMemberRequest adds a member to a workspace
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

// UpdateStatusesRequest replaces the workspace status vocabulary
type UpdateStatusesRequest struct {
	CustomStatuses []string `json:"custom_statuses" binding:"required"`
}

// MemberResponse is one workspace membership entry
type MemberResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// WorkspaceResponse is the public view of a workspace
type WorkspaceResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	OwnerEmail     string           `json:"owner_email"`
	Members        []MemberResponse `json:"members"`
	CustomStatuses []string         `json:"custom_statuses"`
	CreatedAt      time.Time        `json:"created_at"`
}
