package extension

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents the state of an extension request
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// IsValid checks if the status is a known request state
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the request can no longer change state
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ExtensionRequest is an assignee's ask to move a task's deadline. It starts
// Pending and ends Approved or Rejected; terminal states never change.
type ExtensionRequest struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TaskID         uuid.UUID  `json:"task_id" gorm:"type:uuid;not null;index:idx_extension_task"`
	RequesterEmail string     `json:"requester_email" gorm:"type:varchar(255);not null"`
	NewDate        time.Time  `json:"new_date" gorm:"not null"`
	Reason         string     `json:"reason" gorm:"type:text"`
	Status         Status     `json:"status" gorm:"not null;default:'Pending';index:idx_extension_status"`
	DeciderEmail   *string    `json:"decider_email,omitempty" gorm:"type:varchar(255)"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the ExtensionRequest model
func (ExtensionRequest) TableName() string {
	return "extension_requests"
}

// Validate checks if the extension request data is valid
func (e *ExtensionRequest) Validate() error {
	if e.TaskID == uuid.Nil {
		return ErrInvalidInput
	}
	if e.RequesterEmail == "" {
		return ErrInvalidInput
	}
	if e.NewDate.IsZero() {
		return ErrInvalidInput
	}
	if !e.Status.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new extension request record
func (e *ExtensionRequest) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = StatusPending
	}
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	return e.Validate()
}

// BeforeUpdate is called before updating an extension request record
func (e *ExtensionRequest) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return e.Validate()
}
