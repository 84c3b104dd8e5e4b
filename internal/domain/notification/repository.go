package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for notification data access
type Repository interface {
	Create(ctx context.Context, notification *Notification) error

	GetByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	GetByUserEmail(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error)

	GetUnreadByUserEmail(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error)

	MarkAsRead(ctx context.Context, id uuid.UUID) error

	MarkAllAsRead(ctx context.Context, userEmail string) error

	CountUnread(ctx context.Context, userEmail string) (int, error)
}
