package dto

import (
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/task"
	"github.com/google/uuid"
)

// CreateTaskRequest is the payload for creating a task
type CreateTaskRequest struct {
	Title         string           `json:"title" binding:"required"`
	Description   string           `json:"description"`
	AssigneeEmail *string          `json:"assignee_email,omitempty"`
	Status        string           `json:"status,omitempty"`
	Priority      string           `json:"priority,omitempty"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
	StartDate     *time.Time       `json:"start_date,omitempty"`
	Subtasks      []string         `json:"subtasks,omitempty"`
	Recurrence    *task.Recurrence `json:"recurrence,omitempty"`
	ProjectID     *uuid.UUID       `json:"project_id,omitempty"`
	WorkspaceID   uuid.UUID        `json:"workspace_id" binding:"required"`
}

// UpdateTaskRequest is the payload for updating task fields
type UpdateTaskRequest struct {
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	AssigneeEmail *string          `json:"assignee_email,omitempty"`
	Priority      *string          `json:"priority,omitempty"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
	StartDate     *time.Time       `json:"start_date,omitempty"`
	CompletionPct *int             `json:"completion_pct,omitempty"`
	Recurrence    *task.Recurrence `json:"recurrence,omitempty"`
}

// UpdateTaskStatusRequest moves a task to a new status
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignTaskRequest assigns a task to a member
type AssignTaskRequest struct {
	AssigneeEmail string `json:"assignee_email" binding:"required,email"`
}

// AddSubtaskRequest appends a subtask to a task's checklist
type AddSubtaskRequest struct {
	Title string `json:"title" binding:"required"`
}

// LogTimeRequest records work time against a task
type LogTimeRequest struct {
	Duration    int64  `json:"duration" binding:"required"`
	Description string `json:"description"`
}

// StatusChangeResponse is one entry of the task's status history
type StatusChangeResponse struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	By   string    `json:"by"`
	At   time.Time `json:"at"`
}

// SubtaskResponse is one checklist entry
type SubtaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskResponse is the public view of a task. Urgency is derived from the
// due date at response time, never stored.
type TaskResponse struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	AssigneeEmail *string                `json:"assignee_email,omitempty"`
	Status        string                 `json:"status"`
	Priority      string                 `json:"priority"`
	Urgency       string                 `json:"urgency"`
	DueDate       *time.Time             `json:"due_date,omitempty"`
	StartDate     *time.Time             `json:"start_date,omitempty"`
	EndDate       *time.Time             `json:"end_date,omitempty"`
	CompletionPct int                    `json:"completion_pct"`
	Subtasks      []SubtaskResponse      `json:"subtasks"`
	StatusHistory []StatusChangeResponse `json:"status_history"`
	Recurrence    *task.Recurrence       `json:"recurrence,omitempty"`
	ProjectID     *string                `json:"project_id,omitempty"`
	WorkspaceID   string                 `json:"workspace_id"`
	CreatedBy     string                 `json:"created_by"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// TaskListResponse is a paginated task collection
type TaskListResponse struct {
	Tasks    []TaskResponse `json:"tasks"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// TimeEntryResponse is the public view of a logged time entry
type TimeEntryResponse struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	UserEmail   string    `json:"user_email"`
	Duration    int64     `json:"duration"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
