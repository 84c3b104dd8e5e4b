package task

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityNormal TaskPriority = "Normal"
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityUrgent TaskPriority = "Urgent"
)

// IsValid checks if the task priority is valid
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Subtask is a checklist entry on a task
type Subtask struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
}

// SubtaskList stores subtasks as a JSONB column
type SubtaskList []Subtask

// Value implements the driver.Valuer interface for SubtaskList
func (s SubtaskList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for SubtaskList
func (s *SubtaskList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal SubtaskList value: %v", value)
	}
	return json.Unmarshal(bytes, s)
}

// StatusChange is one append-only entry in a task's status history
type StatusChange struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	By   string    `json:"by"`
	At   time.Time `json:"at"`
}

// StatusHistory stores the append-only status change log as JSONB
type StatusHistory []StatusChange

// Value implements the driver.Valuer interface for StatusHistory
func (h StatusHistory) Value() (driver.Value, error) {
	if len(h) == 0 {
		return "[]", nil
	}
	return json.Marshal(h)
}

// Scan implements the sql.Scanner interface for StatusHistory
func (h *StatusHistory) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal StatusHistory value: %v", value)
	}
	return json.Unmarshal(bytes, h)
}

// RecurrencePattern represents how a recurring task repeats
type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
	RecurrenceCustom  RecurrencePattern = "custom"
)

// Recurrence is a task template's rule for spawning future instances.
// LastGenerated only ever moves forward.
type Recurrence struct {
	Pattern       RecurrencePattern `json:"pattern"`
	IntervalDays  int               `json:"interval_days,omitempty"`
	DayOfWeek     time.Weekday      `json:"day_of_week,omitempty"`
	DayOfMonth    int               `json:"day_of_month,omitempty"`
	EndDate       *time.Time        `json:"end_date,omitempty"`
	LastGenerated time.Time         `json:"last_generated"`
	Active        bool              `json:"active"`
}

// Value implements the driver.Valuer interface for Recurrence
func (r Recurrence) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements the sql.Scanner interface for Recurrence
func (r *Recurrence) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal Recurrence value: %v", value)
	}
	return json.Unmarshal(bytes, r)
}

// Task represents a task in the system
type Task struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Title         string        `json:"title" gorm:"not null"`
	Description   string        `json:"description"`
	AssigneeEmail *string       `json:"assignee_email,omitempty" gorm:"type:varchar(255);index:idx_task_assignee"`
	Status        string        `json:"status" gorm:"not null;index:idx_task_status"`
	Priority      TaskPriority  `json:"priority" gorm:"not null;default:'Normal';index:idx_task_priority"`
	DueDate       *time.Time    `json:"due_date,omitempty" gorm:"index:idx_task_due"`
	StartDate     *time.Time    `json:"start_date,omitempty"`
	EndDate       *time.Time    `json:"end_date,omitempty"`
	CompletionPct int           `json:"completion_pct" gorm:"not null;default:0"`
	Subtasks      SubtaskList   `json:"subtasks" gorm:"type:jsonb"`
	StatusHistory StatusHistory `json:"status_history" gorm:"type:jsonb"`
	Recurrence    *Recurrence   `json:"recurrence,omitempty" gorm:"type:jsonb"`

	ProjectID   *uuid.UUID `json:"project_id,omitempty" gorm:"type:uuid;index:idx_task_project"`
	WorkspaceID uuid.UUID  `json:"workspace_id" gorm:"type:uuid;not null;index:idx_task_workspace"`

	CreatedBy string    `json:"created_by" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// Validate checks if the task data is valid
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrInvalidInput
	}
	if t.WorkspaceID == uuid.Nil {
		return ErrInvalidWorkspace
	}
	if !t.Priority.IsValid() {
		return ErrInvalidInput
	}
	if t.CompletionPct < 0 || t.CompletionPct > 100 {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Priority == "" {
		t.Priority = TaskPriorityNormal
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// BeforeUpdate is called before updating a task record
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// RecomputeCompletion derives the completion percentage from subtasks. A
// task without subtasks keeps its manually set percentage.
func (t *Task) RecomputeCompletion() {
	if len(t.Subtasks) == 0 {
		return
	}
	done := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	t.CompletionPct = done * 100 / len(t.Subtasks)
}

// TimeEntry is a logged unit of work against a task
type TimeEntry struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TaskID      uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index:idx_time_entry_task"`
	UserEmail   string    `json:"user_email" gorm:"type:varchar(255);not null;index:idx_time_entry_user"`
	Duration    int64     `json:"duration" gorm:"not null"` // seconds
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null"`
}

// TableName specifies the table name for the TimeEntry model
func (TimeEntry) TableName() string {
	return "time_entries"
}

// BeforeCreate is called before creating a new time entry record
func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.Duration <= 0 {
		return ErrInvalidInput
	}
	return nil
}
