package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CreateInput struct {
	UserEmail string `json:"user_email"`
	Type      Type   `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
}

// Service defines the notification business operations
type Service interface {
	Notify(ctx context.Context, input CreateInput) (*Notification, error)
	List(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error)
	ListUnread(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userEmail string) error
	MarkAllRead(ctx context.Context, userEmail string) error
	CountUnread(ctx context.Context, userEmail string) (int, error)
	Subscribe(userEmail string) (<-chan *Notification, func(), error)
}

type service struct {
	repo     Repository
	signals  SignalRepository
	delivery DeliveryService
	logger   *logrus.Logger
}

// NewService creates a new notification service
func NewService(repo Repository, signals SignalRepository, delivery DeliveryService, logger *logrus.Logger) Service {
	return &service{
		repo:     repo,
		signals:  signals,
		delivery: delivery,
		logger:   logger,
	}
}

// Notify stores a notification and fans it out. Delivery problems are logged
// and never surfaced; once stored the notification counts as sent.
func (s *service) Notify(ctx context.Context, input CreateInput) (*Notification, error) {
	if input.UserEmail == "" || input.Title == "" {
		return nil, ErrInvalidInput
	}

	n := &Notification{
		ID:        uuid.New(),
		UserEmail: input.UserEmail,
		Type:      input.Type,
		Title:     input.Title,
		Message:   input.Message,
		Link:      input.Link,
		Status:    Unread,
	}
	if n.Type == "" {
		n.Type = Info
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.delivery != nil {
		if err := s.delivery.Deliver(ctx, n, InApp); err != nil {
			s.logger.WithError(err).Warn("In-app delivery failed")
		}
		if err := s.delivery.Deliver(ctx, n, Email); err != nil {
			s.logger.WithError(err).Warn("Email delivery failed")
		}
	}

	return n, nil
}

func (s *service) List(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error) {
	return s.repo.GetByUserEmail(ctx, userEmail, limit, offset)
}

func (s *service) ListUnread(ctx context.Context, userEmail string, limit, offset int) ([]*Notification, error) {
	return s.repo.GetUnreadByUserEmail(ctx, userEmail, limit, offset)
}

// MarkRead marks one notification read after checking ownership
func (s *service) MarkRead(ctx context.Context, id uuid.UUID, userEmail string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserEmail != userEmail {
		return ErrForbidden
	}
	return s.repo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, userEmail string) error {
	return s.repo.MarkAllAsRead(ctx, userEmail)
}

func (s *service) CountUnread(ctx context.Context, userEmail string) (int, error) {
	return s.repo.CountUnread(ctx, userEmail)
}

// Subscribe opens a live channel of this user's notifications
func (s *service) Subscribe(userEmail string) (<-chan *Notification, func(), error) {
	return s.signals.Subscribe(userEmail)
}
