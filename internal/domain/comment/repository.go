package comment

import (
	"context"
	"errors"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyContent    = errors.New("comment content must not be empty")
	ErrInvalidEntity   = errors.New("invalid comment entity")
	ErrParentMismatch  = errors.New("parent comment belongs to a different entity")
	ErrNotAuthor       = errors.New("only the author may modify this comment")
)

// Repository defines the interface for comment persistence operations
type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	FindByEntity(ctx context.Context, entityType EntityType, entityID uuid.UUID) ([]Comment, error)
	Update(ctx context.Context, comment *Comment) error
}

type commentRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	var comment Comment
	result := r.db.WithContext(ctx).First(&comment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, result.Error
	}
	return &comment, nil
}

func (r *commentRepository) FindByEntity(ctx context.Context, entityType EntityType, entityID uuid.UUID) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *Comment) error {
	result := r.db.WithContext(ctx).Save(comment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
