package notification

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// postgresRepository implements the Repository interface for PostgreSQL
type postgresRepository struct {
	db     *connection.Database
	logger *logrus.Logger
}

// NewRepository creates a new PostgreSQL notification repository
func NewRepository(db *connection.Database, logger *logrus.Logger) Repository {
	return &postgresRepository{
		db:     db,
		logger: logger,
	}
}

// withRecovery executes the given function with database error recovery
func (r *postgresRepository) withRecovery(ctx context.Context, operation string, fn func(tx *gorm.DB) error) error {
	db := r.db.WithContext(ctx)

	err := fn(db)
	if err != nil {
		r.logger.WithError(err).WithField("operation", operation).Error("Database operation failed")

		if isConnectionError(err) {
			r.logger.WithField("operation", operation).Warn("Database connection error, attempting reconnection")

			if reconnectErr := r.db.Reconnect(); reconnectErr != nil {
				r.logger.WithError(reconnectErr).Error("Failed to reconnect to database")
				return err
			}

			r.logger.WithField("operation", operation).Info("Reconnection successful, retrying operation")
			db = r.db.WithContext(ctx)
			if retryErr := fn(db); retryErr != nil {
				r.logger.WithError(retryErr).Error("Operation failed after reconnection")
				return retryErr
			}

			return nil
		}

		return err
	}

	return nil
}

// Check if an error is related to connection problems
func isConnectionError(err error) bool {
	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "bad connection") ||
		strings.Contains(errMsg, "connection reset by peer") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "connection closed") ||
		strings.Contains(errMsg, "driver: bad connection")
}

// Create creates a new notification
func (r *postgresRepository) Create(ctx context.Context, notification *Notification) error {
	if err := notification.BeforeCreate(); err != nil {
		return err
	}
	return r.withRecovery(ctx, "Create", func(tx *gorm.DB) error {
		return tx.Create(notification).Error
	})
}

// GetByID retrieves a notification by its ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var notification Notification

	err := r.withRecovery(ctx, "GetByID", func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&notification).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &notification, nil
}

// GetByUserEmail retrieves all notifications for a user
func (r *postgresRepository) GetByUserEmail(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error) {
	var notifications []*Notification

	err := r.withRecovery(ctx, "GetByUserEmail", func(tx *gorm.DB) error {
		// Unread first, then newest
		query := tx.Model(&Notification{}).
			Where("user_email = ?", userEmail).
			Order("status DESC, created_at DESC")

		if limit > 0 {
			query = query.Limit(limit)
		}
		if offset > 0 {
			query = query.Offset(offset)
		}

		return query.Find(&notifications).Error
	})

	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// GetUnreadByUserEmail retrieves unread notifications for a user
func (r *postgresRepository) GetUnreadByUserEmail(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error) {
	var notifications []*Notification

	err := r.withRecovery(ctx, "GetUnreadByUserEmail", func(tx *gorm.DB) error {
		query := tx.Where("user_email = ? AND status = ?", userEmail, Unread).
			Order("created_at DESC")

		if limit > 0 {
			query = query.Limit(limit)
		}
		if offset > 0 {
			query = query.Offset(offset)
		}

		return query.Find(&notifications).Error
	})

	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkAsRead marks a notification as read
func (r *postgresRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	now := time.Now()

	return r.withRecovery(ctx, "MarkAsRead", func(tx *gorm.DB) error {
		result := tx.Model(&Notification{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     Read,
				"read_at":    now,
				"updated_at": now,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

// MarkAllAsRead marks all notifications as read for a user
func (r *postgresRepository) MarkAllAsRead(ctx context.Context, userEmail string) error {
	now := time.Now()

	return r.withRecovery(ctx, "MarkAllAsRead", func(tx *gorm.DB) error {
		return tx.Model(&Notification{}).
			Where("user_email = ? AND status = ?", userEmail, Unread).
			Updates(map[string]interface{}{
				"status":     Read,
				"read_at":    now,
				"updated_at": now,
			}).Error
	})
}

// CountUnread counts unread notifications for a user
func (r *postgresRepository) CountUnread(ctx context.Context, userEmail string) (int, error) {
	var count int64

	err := r.withRecovery(ctx, "CountUnread", func(tx *gorm.DB) error {
		return tx.Model(&Notification{}).
			Where("user_email = ? AND status = ?", userEmail, Unread).
			Count(&count).Error
	})

	if err != nil {
		return 0, err
	}

	return int(count), nil
}
