package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the type of notification
type Type string

const (
	Info    Type = "info"
	Warning Type = "warning"
	Mention Type = "mention"
)

// Status represents the status of a notification
type Status string

const (
	// Unread status for new notifications
	Unread Status = "UNREAD"
	// Read status for viewed notifications
	Read Status = "READ"
)

// Notification represents a notification entity
type Notification struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserEmail string     `json:"user_email" gorm:"type:varchar(255);not null;index"`
	Type      Type       `json:"type" gorm:"not null"`
	Title     string     `json:"title" gorm:"not null"`
	Message   string     `json:"message" gorm:"not null"`
	Link      string     `json:"link"`
	Status    Status     `json:"status" gorm:"not null;default:'UNREAD'"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null"`
	ReadAt    *time.Time `json:"read_at"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate hook to set default values
func (n *Notification) BeforeCreate() error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = time.Now()
	}
	if n.Status == "" {
		n.Status = Unread
	}
	return nil
}
