package project

import (
	"context"
	"errors"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidWorkspace = errors.New("invalid workspace ID")
	ErrInvalidStatus    = errors.New("invalid project status")
)

// ProjectFilter defines filtering options for projects
type ProjectFilter struct {
	WorkspaceID *uuid.UUID
	Status      *ProjectStatus
}

// Repository defines the interface for project persistence operations
type Repository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindAll(ctx context.Context, filter ProjectFilter) ([]Project, error)
	Update(ctx context.Context, project *Project) error
}

type projectRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var project Project
	result := r.db.WithContext(ctx).First(&project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, result.Error
	}
	return &project, nil
}

func (r *projectRepository) FindAll(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	query := r.db.WithContext(ctx)

	if filter.WorkspaceID != nil {
		query = query.Where("workspace_id = ?", filter.WorkspaceID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status)
	}

	var projects []Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *Project) error {
	result := r.db.WithContext(ctx).Save(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
