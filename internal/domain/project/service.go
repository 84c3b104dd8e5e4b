package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateProjectInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	WorkspaceID uuid.UUID      `json:"workspace_id"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	ServiceMeta datatypes.JSON `json:"service_meta,omitempty"`
	CreatedBy   string         `json:"created_by"`
}

type UpdateProjectInput struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
}

type Service interface {
	CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*Project, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	if input.Name == "" {
		return nil, ErrInvalidInput
	}
	if input.WorkspaceID == uuid.Nil {
		return nil, ErrInvalidWorkspace
	}

	project := &Project{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		WorkspaceID: input.WorkspaceID,
		Deadline:    input.Deadline,
		Status:      ProjectStatusActive,
		ServiceMeta: input.ServiceMeta,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateProject(ctx context.Context, id uuid.UUID, input UpdateProjectInput) (*Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Deadline != nil {
		project.Deadline = input.Deadline
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		project.Status = *input.Status
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
