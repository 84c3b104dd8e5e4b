package extension

import (
	"context"
	"fmt"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/events"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/notification"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/task"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RequestInput struct {
	TaskID         uuid.UUID `json:"task_id"`
	RequesterEmail string    `json:"requester_email"`
	NewDate        time.Time `json:"new_date"`
	Reason         string    `json:"reason"`
}

// RequestResult carries the created record plus the admin emails the caller
// may want for additional email fan-out. In-app notifications to those
// admins are already created by the service.
type RequestResult struct {
	Request     *ExtensionRequest `json:"request"`
	AdminEmails []string          `json:"admin_emails"`
}

type Service interface {
	Request(ctx context.Context, input RequestInput) (*RequestResult, error)
	Approve(ctx context.Context, id uuid.UUID, deciderEmail string) (*ExtensionRequest, error)
	Reject(ctx context.Context, id uuid.UUID, deciderEmail string) (*ExtensionRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*ExtensionRequest, error)
	ListForTask(ctx context.Context, taskID uuid.UUID) ([]ExtensionRequest, error)
}

type service struct {
	repo          Repository
	tasks         task.TaskRepository
	workspaces    workspace.Repository
	notifications notification.Service
	redis         *cache.RedisClient
	logger        *zap.Logger
}

func NewService(repo Repository, tasks task.TaskRepository, workspaces workspace.Repository, notifications notification.Service, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		repo:          repo,
		tasks:         tasks,
		workspaces:    workspaces,
		notifications: notifications,
		redis:         redis,
		logger:        logger,
	}
}

// Request files a Pending deadline-change request and alerts every admin of
// the task's workspace in-app.
func (s *service) Request(ctx context.Context, input RequestInput) (*RequestResult, error) {
	if input.RequesterEmail == "" || input.NewDate.IsZero() {
		return nil, ErrInvalidInput
	}

	t, err := s.tasks.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	ws, err := s.workspaces.FindByID(ctx, t.WorkspaceID)
	if err != nil {
		return nil, err
	}

	request := &ExtensionRequest{
		ID:             uuid.New(),
		TaskID:         input.TaskID,
		RequesterEmail: input.RequesterEmail,
		NewDate:        input.NewDate,
		Reason:         input.Reason,
		Status:         StatusPending,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	admins := ws.AdminEmails()
	for _, admin := range admins {
		s.notify(ctx, notification.CreateInput{
			UserEmail: admin,
			Type:      notification.Warning,
			Title:     "Extension requested",
			Message: fmt.Sprintf("%s asked to move the deadline of %q to %s",
				input.RequesterEmail, t.Title, input.NewDate.Format("2006-01-02")),
		})
	}

	return &RequestResult{Request: request, AdminEmails: admins}, nil
}

// Approve moves a Pending request to Approved. The task's own due date is
// untouched here; callers apply it explicitly if they want the new deadline.
func (s *service) Approve(ctx context.Context, id uuid.UUID, deciderEmail string) (*ExtensionRequest, error) {
	return s.decide(ctx, id, deciderEmail, StatusApproved)
}

// Reject moves a Pending request to Rejected.
func (s *service) Reject(ctx context.Context, id uuid.UUID, deciderEmail string) (*ExtensionRequest, error) {
	return s.decide(ctx, id, deciderEmail, StatusRejected)
}

func (s *service) decide(ctx context.Context, id uuid.UUID, deciderEmail string, outcome Status) (*ExtensionRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, ErrAlreadyResolved
	}

	now := time.Now()
	request.Status = outcome
	request.DeciderEmail = &deciderEmail
	request.DecidedAt = &now
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, err
	}

	title := "Extension approved"
	nType := notification.Info
	if outcome == StatusRejected {
		title = "Extension rejected"
		nType = notification.Warning
	}
	s.notify(ctx, notification.CreateInput{
		UserEmail: request.RequesterEmail,
		Type:      nType,
		Title:     title,
		Message: fmt.Sprintf("%s %s your deadline request for %s",
			deciderEmail, string(outcome), request.NewDate.Format("2006-01-02")),
	})

	s.publishDecided(ctx, request, deciderEmail)

	return request, nil
}

func (s *service) publishDecided(ctx context.Context, request *ExtensionRequest, deciderEmail string) {
	if s.redis == nil {
		return
	}

	t, err := s.tasks.FindByID(ctx, request.TaskID)
	if err != nil {
		s.logger.Warn("Failed to load task for extension event",
			zap.String("request_id", request.ID.String()),
			zap.Error(err))
		return
	}

	event := &events.WorkspaceEvent{
		EventType:   events.EventExtensionDecided,
		WorkspaceID: t.WorkspaceID,
		EntityID:    request.ID,
		ActorEmail:  deciderEmail,
		Timestamp:   time.Now().UTC(),
		Details: map[string]interface{}{
			"task_id":  request.TaskID.String(),
			"outcome":  string(request.Status),
			"new_date": request.NewDate,
		},
	}
	if err := s.redis.PublishWorkspaceEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish extension decided event", zap.Error(err))
	}
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ExtensionRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListForTask(ctx context.Context, taskID uuid.UUID) ([]ExtensionRequest, error) {
	return s.repo.FindByTask(ctx, taskID)
}

func (s *service) notify(ctx context.Context, input notification.CreateInput) {
	if s.notifications == nil {
		return
	}
	if _, err := s.notifications.Notify(ctx, input); err != nil {
		s.logger.Error("Failed to create extension notification",
			zap.String("recipient", input.UserEmail),
			zap.Error(err))
	}
}
