package workspace

import (
	"context"
	"errors"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidOwner      = errors.New("invalid workspace owner")
	ErrInvalidRole       = errors.New("invalid member role")
	ErrEmptyStatusSet    = errors.New("workspace must have at least one status")
	ErrMemberExists      = errors.New("member already in workspace")
	ErrMemberNotFound    = errors.New("member not found in workspace")
)

// Repository defines the interface for workspace persistence operations
type Repository interface {
	Create(ctx context.Context, workspace *Workspace) error
	FindByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	FindByMember(ctx context.Context, email string) ([]Workspace, error)
	Update(ctx context.Context, workspace *Workspace) error
}

type workspaceRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &workspaceRepository{db: db}
}

func (r *workspaceRepository) Create(ctx context.Context, workspace *Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

func (r *workspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*Workspace, error) {
	var workspace Workspace
	result := r.db.WithContext(ctx).First(&workspace, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, result.Error
	}
	return &workspace, nil
}

func (r *workspaceRepository) FindByMember(ctx context.Context, email string) ([]Workspace, error) {
	var workspaces []Workspace
	err := r.db.WithContext(ctx).
		Where(`members @> ?`, `[{"email":"`+email+`"}]`).
		Or("owner_email = ?", email).
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (r *workspaceRepository) Update(ctx context.Context, workspace *Workspace) error {
	result := r.db.WithContext(ctx).Save(workspace)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}
