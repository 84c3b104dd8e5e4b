package task

import (
	"context"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/events"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateTaskInput struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	AssigneeEmail *string      `json:"assignee_email,omitempty"`
	Status        string       `json:"status,omitempty"`
	Priority      TaskPriority `json:"priority,omitempty"`
	DueDate       *time.Time   `json:"due_date,omitempty"`
	StartDate     *time.Time   `json:"start_date,omitempty"`
	Subtasks      []string     `json:"subtasks,omitempty"`
	Recurrence    *Recurrence  `json:"recurrence,omitempty"`
	ProjectID     *uuid.UUID   `json:"project_id,omitempty"`
	WorkspaceID   uuid.UUID    `json:"workspace_id"`
	CreatedBy     string       `json:"created_by"`
}

type UpdateTaskInput struct {
	Title         *string       `json:"title,omitempty"`
	Description   *string       `json:"description,omitempty"`
	AssigneeEmail *string       `json:"assignee_email,omitempty"`
	Priority      *TaskPriority `json:"priority,omitempty"`
	DueDate       *time.Time    `json:"due_date,omitempty"`
	StartDate     *time.Time    `json:"start_date,omitempty"`
	CompletionPct *int          `json:"completion_pct,omitempty"`
	Recurrence    *Recurrence   `json:"recurrence,omitempty"`
}

type LogTimeInput struct {
	TaskID      uuid.UUID `json:"task_id"`
	UserEmail   string    `json:"user_email"`
	Duration    int64     `json:"duration"`
	Description string    `json:"description"`
}

type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string, actor string) (*Task, error)
	AssignTask(ctx context.Context, id uuid.UUID, assigneeEmail string, actor string) (*Task, error)
	AddSubtask(ctx context.Context, id uuid.UUID, title string) (*Task, error)
	ToggleSubtask(ctx context.Context, id uuid.UUID, subtaskID uuid.UUID) (*Task, error)
	LogTime(ctx context.Context, input LogTimeInput) (*TimeEntry, error)
	ListTimeEntries(ctx context.Context, taskID uuid.UUID) ([]TimeEntry, error)
	SetDueDate(ctx context.Context, id uuid.UUID, dueDate time.Time, actor string) (*Task, error)
}

type service struct {
	repo       TaskRepository
	workspaces workspace.Repository
	redis      *cache.RedisClient
	logger     *zap.Logger
}

func NewService(repo TaskRepository, workspaces workspace.Repository, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{repo: repo, workspaces: workspaces, redis: redis, logger: logger}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, ErrInvalidInput
	}
	if input.WorkspaceID == uuid.Nil {
		return nil, ErrInvalidWorkspace
	}

	ws, err := s.workspaces.FindByID(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = ws.CustomStatuses[0]
	} else if !ws.CustomStatuses.Contains(status) {
		return nil, ErrStatusNotAllowed
	}

	priority := input.Priority
	if priority == "" {
		priority = TaskPriorityNormal
	}

	subtasks := make(SubtaskList, 0, len(input.Subtasks))
	for _, title := range input.Subtasks {
		subtasks = append(subtasks, Subtask{ID: uuid.New(), Title: title})
	}

	now := time.Now()
	t := &Task{
		ID:            uuid.New(),
		Title:         input.Title,
		Description:   input.Description,
		AssigneeEmail: input.AssigneeEmail,
		Status:        status,
		Priority:      priority,
		DueDate:       input.DueDate,
		StartDate:     input.StartDate,
		Subtasks:      subtasks,
		StatusHistory: StatusHistory{{From: "", To: status, By: input.CreatedBy, At: now}},
		Recurrence:    input.Recurrence,
		ProjectID:     input.ProjectID,
		WorkspaceID:   input.WorkspaceID,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventTaskCreated, t, input.CreatedBy, map[string]interface{}{
		"title":  t.Title,
		"status": t.Status,
	})

	return t, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrInvalidInput
		}
		t.Title = *input.Title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.AssigneeEmail != nil {
		t.AssigneeEmail = input.AssigneeEmail
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidInput
		}
		t.Priority = *input.Priority
	}
	if input.DueDate != nil {
		t.DueDate = input.DueDate
	}
	if input.StartDate != nil {
		t.StartDate = input.StartDate
	}
	if input.CompletionPct != nil && len(t.Subtasks) == 0 {
		t.CompletionPct = *input.CompletionPct
	}
	if input.Recurrence != nil {
		t.Recurrence = input.Recurrence
	}

	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateStatus moves a task to a new status, appending to the append-only
// status history. The first transition into Completed stamps EndDate; the
// stamp is sticky across later transitions unless the date is cleared.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string, actor string) (*Task, error) {
	if newStatus == "" {
		return nil, ErrInvalidInput
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ws, err := s.workspaces.FindByID(ctx, t.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.CustomStatuses.Contains(newStatus) {
		return nil, ErrStatusNotAllowed
	}

	now := time.Now()
	oldStatus := t.Status
	t.Status = newStatus
	t.StatusHistory = append(t.StatusHistory, StatusChange{
		From: oldStatus,
		To:   newStatus,
		By:   actor,
		At:   now,
	})

	if newStatus == workspace.StatusCompleted && t.EndDate == nil {
		t.EndDate = &now
	}

	t.UpdatedAt = now
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.EventTaskStatusMoved, t, actor, map[string]interface{}{
		"old_status": oldStatus,
		"new_status": newStatus,
	})

	return t, nil
}

func (s *service) AssignTask(ctx context.Context, id uuid.UUID, assigneeEmail string, actor string) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t.AssigneeEmail = &assigneeEmail
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Task assigned",
		zap.String("task_id", t.ID.String()),
		zap.String("assignee", assigneeEmail),
		zap.String("actor", actor))

	return t, nil
}

func (s *service) AddSubtask(ctx context.Context, id uuid.UUID, title string) (*Task, error) {
	if title == "" {
		return nil, ErrInvalidInput
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Subtasks = append(t.Subtasks, Subtask{ID: uuid.New(), Title: title})
	t.RecomputeCompletion()
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) ToggleSubtask(ctx context.Context, id uuid.UUID, subtaskID uuid.UUID) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == subtaskID {
			t.Subtasks[i].Completed = !t.Subtasks[i].Completed
			found = true
			break
		}
	}
	if !found {
		return nil, ErrInvalidInput
	}

	t.RecomputeCompletion()
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) LogTime(ctx context.Context, input LogTimeInput) (*TimeEntry, error) {
	if input.Duration <= 0 || input.UserEmail == "" {
		return nil, ErrInvalidInput
	}

	// The task must resolve before any entry is written
	if _, err := s.repo.FindByID(ctx, input.TaskID); err != nil {
		return nil, err
	}

	entry := &TimeEntry{
		ID:          uuid.New(),
		TaskID:      input.TaskID,
		UserEmail:   input.UserEmail,
		Duration:    input.Duration,
		Description: input.Description,
		Timestamp:   time.Now(),
	}

	if err := s.repo.CreateTimeEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) ListTimeEntries(ctx context.Context, taskID uuid.UUID) ([]TimeEntry, error) {
	return s.repo.FindTimeEntries(ctx, taskID)
}

// SetDueDate moves a task's due date. Used by the extension workflow once a
// request has been approved.
func (s *service) SetDueDate(ctx context.Context, id uuid.UUID, dueDate time.Time, actor string) (*Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t.DueDate = &dueDate
	t.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Task due date moved",
		zap.String("task_id", t.ID.String()),
		zap.Time("due_date", dueDate),
		zap.String("actor", actor))

	return t, nil
}

func (s *service) publishEvent(ctx context.Context, eventType string, t *Task, actor string, details map[string]interface{}) {
	if s.redis == nil {
		return
	}

	event := &events.WorkspaceEvent{
		EventType:   eventType,
		WorkspaceID: t.WorkspaceID,
		EntityID:    t.ID,
		ActorEmail:  actor,
		Timestamp:   time.Now().UTC(),
		Details:     details,
	}
	if err := s.redis.PublishWorkspaceEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish workspace event", zap.Error(err))
	}
}
