package extension

import (
	"context"
	"testing"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/notification"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/task"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockExtensionRepo struct {
	requests map[uuid.UUID]*ExtensionRequest
}

func newMockExtensionRepo() *mockExtensionRepo {
	return &mockExtensionRepo{requests: make(map[uuid.UUID]*ExtensionRequest)}
}

func (m *mockExtensionRepo) Create(ctx context.Context, r *ExtensionRequest) error {
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

func (m *mockExtensionRepo) FindByID(ctx context.Context, id uuid.UUID) (*ExtensionRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockExtensionRepo) FindByTask(ctx context.Context, taskID uuid.UUID) ([]ExtensionRequest, error) {
	var out []ExtensionRequest
	for _, r := range m.requests {
		if r.TaskID == taskID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockExtensionRepo) FindPending(ctx context.Context) ([]ExtensionRequest, error) {
	var out []ExtensionRequest
	for _, r := range m.requests {
		if r.Status == StatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockExtensionRepo) Update(ctx context.Context, r *ExtensionRequest) error {
	if _, ok := m.requests[r.ID]; !ok {
		return ErrRequestNotFound
	}
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

type mockTaskRepo struct {
	task *task.Task
}

func (m *mockTaskRepo) Create(ctx context.Context, t *task.Task) error { return nil }

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	if m.task == nil || m.task.ID != id {
		return nil, task.ErrTaskNotFound
	}
	return m.task, nil
}

func (m *mockTaskRepo) FindAll(ctx context.Context, filter task.TaskFilter) ([]task.Task, int64, error) {
	return nil, 0, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, t *task.Task) error { return nil }

func (m *mockTaskRepo) FindRecurring(ctx context.Context) ([]task.Task, error) { return nil, nil }

func (m *mockTaskRepo) AdvanceRecurrence(ctx context.Context, id uuid.UUID, prev, next task.Recurrence) (bool, error) {
	return false, nil
}

func (m *mockTaskRepo) CreateTimeEntry(ctx context.Context, entry *task.TimeEntry) error { return nil }

func (m *mockTaskRepo) FindTimeEntries(ctx context.Context, taskID uuid.UUID) ([]task.TimeEntry, error) {
	return nil, nil
}

type mockWorkspaceRepo struct {
	ws *workspace.Workspace
}

func (m *mockWorkspaceRepo) Create(ctx context.Context, ws *workspace.Workspace) error { return nil }

func (m *mockWorkspaceRepo) FindByID(ctx context.Context, id uuid.UUID) (*workspace.Workspace, error) {
	if m.ws == nil || m.ws.ID != id {
		return nil, workspace.ErrWorkspaceNotFound
	}
	return m.ws, nil
}

func (m *mockWorkspaceRepo) FindByMember(ctx context.Context, email string) ([]workspace.Workspace, error) {
	return nil, nil
}

func (m *mockWorkspaceRepo) Update(ctx context.Context, ws *workspace.Workspace) error { return nil }

type capturingNotifier struct {
	created []notification.CreateInput
}

func (c *capturingNotifier) Notify(ctx context.Context, input notification.CreateInput) (*notification.Notification, error) {
	c.created = append(c.created, input)
	return &notification.Notification{ID: uuid.New()}, nil
}

func (c *capturingNotifier) List(ctx context.Context, userEmail string, limit, offset int) ([]*notification.Notification, error) {
	return nil, nil
}

func (c *capturingNotifier) ListUnread(ctx context.Context, userEmail string, limit, offset int) ([]*notification.Notification, error) {
	return nil, nil
}

func (c *capturingNotifier) MarkRead(ctx context.Context, id uuid.UUID, userEmail string) error {
	return nil
}

func (c *capturingNotifier) MarkAllRead(ctx context.Context, userEmail string) error { return nil }

func (c *capturingNotifier) CountUnread(ctx context.Context, userEmail string) (int, error) {
	return 0, nil
}

func (c *capturingNotifier) Subscribe(userEmail string) (<-chan *notification.Notification, func(), error) {
	return nil, func() {}, nil
}

func newFixture() (Service, *capturingNotifier, *task.Task) {
	ws := &workspace.Workspace{
		ID:         uuid.New(),
		Name:       "Engineering",
		OwnerEmail: "owner@co.com",
		Members: workspace.MemberList{
			{Email: "owner@co.com", Name: "Olga Ng", Role: workspace.RoleOwner},
			{Email: "admin@co.com", Name: "Adam West", Role: workspace.RoleAdmin},
			{Email: "emp@co.com", Name: "Evan Park", Role: workspace.RoleEmployee},
		},
		CustomStatuses: workspace.DefaultStatuses(),
	}
	tk := &task.Task{
		ID:          uuid.New(),
		Title:       "Quarterly audit",
		Status:      "In Progress",
		Priority:    task.TaskPriorityNormal,
		WorkspaceID: ws.ID,
		CreatedBy:   "owner@co.com",
	}

	notifier := &capturingNotifier{}
	svc := NewService(newMockExtensionRepo(), &mockTaskRepo{task: tk}, &mockWorkspaceRepo{ws: ws}, notifier, nil, zap.NewNop())
	return svc, notifier, tk
}

func TestRequestExtension(t *testing.T) {
	ctx := context.Background()
	newDate := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates a pending request and alerts admins", func(t *testing.T) {
		svc, notifier, tk := newFixture()

		result, err := svc.Request(ctx, RequestInput{
			TaskID:         tk.ID,
			RequesterEmail: "emp@co.com",
			NewDate:        newDate,
			Reason:         "Waiting on vendor data",
		})
		require.NoError(t, err)

		assert.Equal(t, StatusPending, result.Request.Status)
		assert.ElementsMatch(t, []string{"owner@co.com", "admin@co.com"}, result.AdminEmails)

		require.Len(t, notifier.created, 2)
		for _, n := range notifier.created {
			assert.Equal(t, notification.Warning, n.Type)
			assert.Equal(t, "Extension requested", n.Title)
			assert.Contains(t, n.Message, "Quarterly audit")
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		svc, _, tk := newFixture()
		_, err := svc.Request(ctx, RequestInput{TaskID: tk.ID, NewDate: newDate})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects unknown task", func(t *testing.T) {
		svc, _, _ := newFixture()
		_, err := svc.Request(ctx, RequestInput{
			TaskID:         uuid.New(),
			RequesterEmail: "emp@co.com",
			NewDate:        newDate,
		})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestDecideExtension(t *testing.T) {
	ctx := context.Background()
	newDate := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	file := func(t *testing.T, svc Service, tk *task.Task) *ExtensionRequest {
		t.Helper()
		result, err := svc.Request(ctx, RequestInput{
			TaskID:         tk.ID,
			RequesterEmail: "emp@co.com",
			NewDate:        newDate,
			Reason:         "Scope grew",
		})
		require.NoError(t, err)
		return result.Request
	}

	t.Run("approve notifies the requester", func(t *testing.T) {
		svc, notifier, tk := newFixture()
		req := file(t, svc, tk)
		notifier.created = nil

		decided, err := svc.Approve(ctx, req.ID, "admin@co.com")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, decided.Status)
		require.NotNil(t, decided.DeciderEmail)
		assert.Equal(t, "admin@co.com", *decided.DeciderEmail)
		assert.NotNil(t, decided.DecidedAt)

		require.Len(t, notifier.created, 1)
		assert.Equal(t, "emp@co.com", notifier.created[0].UserEmail)
		assert.Equal(t, "Extension approved", notifier.created[0].Title)
	})

	t.Run("reject notifies the requester with a warning", func(t *testing.T) {
		svc, notifier, tk := newFixture()
		req := file(t, svc, tk)
		notifier.created = nil

		decided, err := svc.Reject(ctx, req.ID, "owner@co.com")
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, decided.Status)

		require.Len(t, notifier.created, 1)
		assert.Equal(t, notification.Warning, notifier.created[0].Type)
		assert.Equal(t, "Extension rejected", notifier.created[0].Title)
	})

	t.Run("terminal states never change", func(t *testing.T) {
		svc, _, tk := newFixture()
		req := file(t, svc, tk)

		_, err := svc.Approve(ctx, req.ID, "admin@co.com")
		require.NoError(t, err)

		_, err = svc.Reject(ctx, req.ID, "owner@co.com")
		assert.ErrorIs(t, err, ErrAlreadyResolved)

		_, err = svc.Approve(ctx, req.ID, "owner@co.com")
		assert.ErrorIs(t, err, ErrAlreadyResolved)
	})

	t.Run("unknown request", func(t *testing.T) {
		svc, _, _ := newFixture()
		_, err := svc.Approve(ctx, uuid.New(), "admin@co.com")
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}
