package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusOnHold    ProjectStatus = "On Hold"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusArchived  ProjectStatus = "Archived"
)

// IsValid checks if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}

// Project groups tasks within a workspace
type Project struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string        `json:"name" gorm:"type:varchar(255);not null"`
	Description string        `json:"description" gorm:"type:text"`
	WorkspaceID uuid.UUID     `json:"workspace_id" gorm:"type:uuid;not null;index:idx_project_workspace"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(20);not null;default:'Active';index:idx_project_status"`

	// ServiceMeta holds optional service/template metadata copied onto the
	// project at creation time.
	ServiceMeta datatypes.JSON `json:"service_meta,omitempty" gorm:"type:jsonb"`

	CreatedBy string    `json:"created_by" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

// Validate checks if the project data is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return ErrInvalidInput
	}
	if p.WorkspaceID == uuid.Nil {
		return ErrInvalidWorkspace
	}
	if !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// BeforeCreate is called before creating a new project record
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return p.Validate()
}

// BeforeUpdate is called before updating a project record
func (p *Project) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return p.Validate()
}
