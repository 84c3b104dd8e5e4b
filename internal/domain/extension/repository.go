package extension

import (
	"context"
	"errors"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound  = errors.New("extension request not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAlreadyResolved  = errors.New("extension request already resolved")
	ErrNotWorkspaceTask = errors.New("task does not belong to a workspace")
)

// Repository defines the interface for extension request persistence
type Repository interface {
	Create(ctx context.Context, request *ExtensionRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*ExtensionRequest, error)
	FindByTask(ctx context.Context, taskID uuid.UUID) ([]ExtensionRequest, error)
	FindPending(ctx context.Context) ([]ExtensionRequest, error)
	Update(ctx context.Context, request *ExtensionRequest) error
}

type extensionRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &extensionRepository{db: db}
}

func (r *extensionRepository) Create(ctx context.Context, request *ExtensionRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *extensionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ExtensionRequest, error) {
	var request ExtensionRequest
	result := r.db.WithContext(ctx).First(&request, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, result.Error
	}
	return &request, nil
}

func (r *extensionRepository) FindByTask(ctx context.Context, taskID uuid.UUID) ([]ExtensionRequest, error) {
	var requests []ExtensionRequest
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *extensionRepository) FindPending(ctx context.Context) ([]ExtensionRequest, error) {
	var requests []ExtensionRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *extensionRepository) Update(ctx context.Context, request *ExtensionRequest) error {
	result := r.db.WithContext(ctx).Save(request)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}
