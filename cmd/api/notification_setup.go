package main

import (
	"context"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/notification"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/user"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/config"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/mailer"
	"github.com/sirupsen/logrus"
)

// NotificationSystem holds all notification-related components
type NotificationSystem struct {
	Service  notification.Service
	Signals  notification.SignalRepository
	Mentions *notification.MentionService
	Logger   *logrus.Logger
}

// emailPreferences answers opt-in questions from the user profile. A lookup
// failure counts as opted out; the in-app copy already exists by then.
type emailPreferences struct {
	users user.Service
}

func (p emailPreferences) AllowsEmail(ctx context.Context, userEmail string) bool {
	u, err := p.users.GetByEmail(ctx, userEmail)
	if err != nil {
		return false
	}
	return u.EmailNotifications
}

// SetupNotificationSystem initializes and configures all notification components
func SetupNotificationSystem(
	db *connection.Database,
	workspaceRepo workspace.Repository,
	users user.Service,
	cfg *config.Config,
	isDevelopment bool,
) *NotificationSystem {
	notifLogger := logrus.New()
	notifLogger.SetFormatter(&logrus.JSONFormatter{})
	if isDevelopment {
		notifLogger.SetLevel(logrus.DebugLevel)
	} else {
		notifLogger.SetLevel(logrus.InfoLevel)
	}

	repo := notification.NewRepository(db, notifLogger)
	signalRepo := notification.NewSignalRepository(100) // Buffer size of 100

	inAppDelivery := notification.NewInAppDeliveryService(signalRepo, notifLogger)

	var emailDelivery notification.DeliveryService
	if cfg.SMTP.Enabled {
		emailDelivery = notification.NewEmailDeliveryService(
			mailer.NewSMTPMailer(cfg.SMTP, notifLogger), notifLogger)
	}

	compositeDelivery := notification.NewCompositeDeliveryService(
		notifLogger,
		inAppDelivery,
		emailDelivery,
		emailPreferences{users: users},
	)

	service := notification.NewService(repo, signalRepo, compositeDelivery, notifLogger)
	mentions := notification.NewMentionService(service, workspaceRepo, cfg.App.BaseURL, notifLogger)

	return &NotificationSystem{
		Service:  service,
		Signals:  signalRepo,
		Mentions: mentions,
		Logger:   notifLogger,
	}
}
