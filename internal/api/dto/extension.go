package dto

import (
	"time"

	"github.com/google/uuid"
)

// RequestExtensionRequest files a deadline-change request for a task
type RequestExtensionRequest struct {
	TaskID  uuid.UUID `json:"task_id" binding:"required"`
	NewDate time.Time `json:"new_date" binding:"required"`
	Reason  string    `json:"reason"`
}

// DecideExtensionRequest approves or rejects a pending request
type DecideExtensionRequest struct {
	// ApplyToTask moves the task's due date on approval
	ApplyToTask bool `json:"apply_to_task"`
}

// ExtensionResponse is the public view of an extension request
type ExtensionResponse struct {
	ID             string     `json:"id"`
	TaskID         string     `json:"task_id"`
	RequesterEmail string     `json:"requester_email"`
	NewDate        time.Time  `json:"new_date"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	DeciderEmail   *string    `json:"decider_email,omitempty"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
