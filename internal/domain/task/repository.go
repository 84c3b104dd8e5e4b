package task

import (
	"context"
	"errors"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidWorkspace = errors.New("invalid workspace ID")
	ErrStatusNotAllowed = errors.New("status not in workspace status set")
)

// TaskFilter defines filtering options for tasks
type TaskFilter struct {
	WorkspaceID   *uuid.UUID
	ProjectID     *uuid.UUID
	AssigneeEmail *string
	Status        *string
	Priority      *TaskPriority
	DueDateStart  *time.Time
	DueDateEnd    *time.Time
	Page          int
	PageSize      int
}

// TaskRepository defines the interface for task persistence operations
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	Update(ctx context.Context, task *Task) error

	// Recurrence support
	FindRecurring(ctx context.Context) ([]Task, error)
	AdvanceRecurrence(ctx context.Context, id uuid.UUID, prev, next Recurrence) (bool, error)

	// Time tracking
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	FindTimeEntries(ctx context.Context, taskID uuid.UUID) ([]TimeEntry, error)
}

type taskRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var task Task
	result := r.db.WithContext(ctx).First(&task, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var tasks []Task
	var total int64

	query := r.db.WithContext(ctx)

	if filter.WorkspaceID != nil {
		query = query.Where("workspace_id = ?", filter.WorkspaceID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.AssigneeEmail != nil {
		query = query.Where("assignee_email = ?", filter.AssigneeEmail)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.DueDateStart != nil {
		query = query.Where("due_date >= ?", *filter.DueDateStart)
	}
	if filter.DueDateEnd != nil {
		query = query.Where("due_date < ?", *filter.DueDateEnd)
	}

	// Count total before pagination
	if err := query.Model(&Task{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}
	query = query.Offset(filter.Page * filter.PageSize).Limit(filter.PageSize)

	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *taskRepository) Update(ctx context.Context, task *Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) FindRecurring(ctx context.Context) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("recurrence IS NOT NULL").
		Where("recurrence ->> 'active' = 'true'").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// AdvanceRecurrence swaps a task's recurrence from prev to next only if the
// stored value still equals prev. A false return means another run already
// advanced it; the caller must not generate an instance.
func (r *taskRepository) AdvanceRecurrence(ctx context.Context, id uuid.UUID, prev, next Recurrence) (bool, error) {
	result := r.db.WithContext(ctx).Model(&Task{}).
		Where("id = ? AND recurrence = ?", id, prev).
		UpdateColumns(map[string]interface{}{
			"recurrence": next,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *taskRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *taskRepository) FindTimeEntries(ctx context.Context, taskID uuid.UUID) ([]TimeEntry, error) {
	var entries []TimeEntry
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("timestamp DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
