package notification

import (
	"context"
	"fmt"
	"html"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/mailer"
	"github.com/sirupsen/logrus"
)

// DeliveryMethod names a channel a notification can go out on
type DeliveryMethod string

const (
	InApp DeliveryMethod = "in_app"
	Email DeliveryMethod = "email"
)

// DeliveryService sends a stored notification out through a channel
type DeliveryService interface {
	Deliver(ctx context.Context, notification *Notification, method DeliveryMethod) error
}

// EmailPreferences answers whether a user has opted in to email delivery
type EmailPreferences interface {
	AllowsEmail(ctx context.Context, userEmail string) bool
}

// compositeDeliveryService fans a notification out to in-app always and to
// email when the user has opted in. Email failures never fail the
// notification; the in-app copy is the source of truth.
type compositeDeliveryService struct {
	logger   *logrus.Logger
	inAppSvc DeliveryService
	emailSvc DeliveryService
	prefs    EmailPreferences
}

// NewCompositeDeliveryService creates a new composite delivery service
func NewCompositeDeliveryService(logger *logrus.Logger, inApp, email DeliveryService, prefs EmailPreferences) DeliveryService {
	return &compositeDeliveryService{
		logger:   logger,
		inAppSvc: inApp,
		emailSvc: email,
		prefs:    prefs,
	}
}

// Deliver sends a notification through a specific channel
func (s *compositeDeliveryService) Deliver(ctx context.Context, notification *Notification, method DeliveryMethod) error {
	switch method {
	case InApp:
		return s.inAppSvc.Deliver(ctx, notification, method)
	case Email:
		if s.emailSvc == nil {
			return nil
		}
		if s.prefs != nil && !s.prefs.AllowsEmail(ctx, notification.UserEmail) {
			return nil
		}
		if err := s.emailSvc.Deliver(ctx, notification, method); err != nil {
			s.logger.WithError(err).WithField("user_email", notification.UserEmail).
				Warn("Email delivery failed, in-app copy stands")
		}
		return nil
	}

	s.logger.WithField("method", method).Warn("Unsupported delivery method, skipping")
	return nil
}

// inAppDeliveryService implements DeliveryService for in-app notifications
type inAppDeliveryService struct {
	signalRepo SignalRepository
	logger     *logrus.Logger
}

// NewInAppDeliveryService creates a new in-app delivery service
func NewInAppDeliveryService(signalRepo SignalRepository, logger *logrus.Logger) DeliveryService {
	return &inAppDeliveryService{
		signalRepo: signalRepo,
		logger:     logger,
	}
}

// Deliver pushes the notification to the user's live subscribers
func (s *inAppDeliveryService) Deliver(ctx context.Context, notification *Notification, method DeliveryMethod) error {
	return s.signalRepo.Publish(notification.UserEmail, notification)
}

// emailDeliveryService implements DeliveryService for email notifications
type emailDeliveryService struct {
	mailer mailer.Mailer
	logger *logrus.Logger
}

// NewEmailDeliveryService creates a new email delivery service
func NewEmailDeliveryService(m mailer.Mailer, logger *logrus.Logger) DeliveryService {
	return &emailDeliveryService{
		mailer: m,
		logger: logger,
	}
}

// Deliver sends the notification as an HTML email
func (s *emailDeliveryService) Deliver(ctx context.Context, notification *Notification, method DeliveryMethod) error {
	body := fmt.Sprintf("<p>%s</p>", html.EscapeString(notification.Message))
	if notification.Link != "" {
		body += fmt.Sprintf(`<p><a href="%s">Open in DreamShift</a></p>`, notification.Link)
	}

	if !s.mailer.Send(notification.UserEmail, notification.Title, body) {
		return fmt.Errorf("mailer refused message to %s", notification.UserEmail)
	}

	s.logger.WithFields(logrus.Fields{
		"notification_id": notification.ID,
		"user_email":      notification.UserEmail,
	}).Info("Email notification sent")

	return nil
}
