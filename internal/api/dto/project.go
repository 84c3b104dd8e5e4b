package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreateProjectRequest is the payload for creating a project
type CreateProjectRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	WorkspaceID uuid.UUID      `json:"workspace_id" binding:"required"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	ServiceMeta datatypes.JSON `json:"service_meta,omitempty"`
}

// UpdateProjectRequest is the payload for updating a project
type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// ProjectResponse is the public view of a project
type ProjectResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	WorkspaceID string         `json:"workspace_id"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	Status      string         `json:"status"`
	ServiceMeta datatypes.JSON `json:"service_meta,omitempty"`
	CreatedBy   string         `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
}
