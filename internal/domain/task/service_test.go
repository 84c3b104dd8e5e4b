package task

import (
	"context"
	"testing"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/workspace"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockTaskRepository is an in-memory TaskRepository for service tests
type mockTaskRepository struct {
	tasks   map[uuid.UUID]*Task
	entries []TimeEntry
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[uuid.UUID]*Task)}
}

func (m *mockTaskRepository) Create(ctx context.Context, task *Task) error {
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

func (m *mockTaskRepository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var out []Task
	for _, task := range m.tasks {
		if filter.WorkspaceID != nil && task.WorkspaceID != *filter.WorkspaceID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		out = append(out, *task)
	}
	return out, int64(len(out)), nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return ErrTaskNotFound
	}
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepository) FindRecurring(ctx context.Context) ([]Task, error) {
	var out []Task
	for _, task := range m.tasks {
		if task.Recurrence != nil && task.Recurrence.Active {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (m *mockTaskRepository) AdvanceRecurrence(ctx context.Context, id uuid.UUID, prev, next Recurrence) (bool, error) {
	task, ok := m.tasks[id]
	if !ok || task.Recurrence == nil {
		return false, nil
	}
	if *task.Recurrence != prev {
		return false, nil
	}
	rec := next
	task.Recurrence = &rec
	return true, nil
}

func (m *mockTaskRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockTaskRepository) FindTimeEntries(ctx context.Context, taskID uuid.UUID) ([]TimeEntry, error) {
	var out []TimeEntry
	for _, e := range m.entries {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out, nil
}

// mockWorkspaceRepository serves one fixed workspace
type mockWorkspaceRepository struct {
	workspace *Workspace
}

type Workspace = workspace.Workspace

func (m *mockWorkspaceRepository) Create(ctx context.Context, ws *Workspace) error { return nil }

func (m *mockWorkspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*Workspace, error) {
	if m.workspace == nil || m.workspace.ID != id {
		return nil, workspace.ErrWorkspaceNotFound
	}
	return m.workspace, nil
}

func (m *mockWorkspaceRepository) FindByMember(ctx context.Context, email string) ([]Workspace, error) {
	return nil, nil
}

func (m *mockWorkspaceRepository) Update(ctx context.Context, ws *Workspace) error { return nil }

func newTestService(t *testing.T) (Service, *mockTaskRepository, *Workspace) {
	t.Helper()

	ws := &Workspace{
		ID:             uuid.New(),
		Name:           "Engineering",
		OwnerEmail:     "owner@dreamshift.io",
		CustomStatuses: workspace.DefaultStatuses(),
	}
	repo := newMockTaskRepository()
	svc := NewService(repo, &mockWorkspaceRepository{workspace: ws}, nil, zap.NewNop())
	return svc, repo, ws
}

func TestCreateTask(t *testing.T) {
	svc, _, ws := newTestService(t)
	ctx := context.Background()

	t.Run("defaults to first workspace status", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, CreateTaskInput{
			Title:       "Prepare sprint review",
			WorkspaceID: ws.ID,
			CreatedBy:   "owner@dreamshift.io",
		})
		require.NoError(t, err)
		assert.Equal(t, "To Do", task.Status)
		assert.Equal(t, TaskPriorityNormal, task.Priority)
		require.Len(t, task.StatusHistory, 1)
		assert.Equal(t, "", task.StatusHistory[0].From)
		assert.Equal(t, "To Do", task.StatusHistory[0].To)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, CreateTaskInput{WorkspaceID: ws.ID})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects status outside the workspace vocabulary", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, CreateTaskInput{
			Title:       "Bad status",
			Status:      "Doing",
			WorkspaceID: ws.ID,
			CreatedBy:   "owner@dreamshift.io",
		})
		assert.ErrorIs(t, err, ErrStatusNotAllowed)
	})

	t.Run("rejects unknown workspace", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, CreateTaskInput{
			Title:       "Orphan",
			WorkspaceID: uuid.New(),
			CreatedBy:   "owner@dreamshift.io",
		})
		assert.ErrorIs(t, err, workspace.ErrWorkspaceNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	svc, _, ws := newTestService(t)
	ctx := context.Background()

	create := func(t *testing.T) *Task {
		t.Helper()
		task, err := svc.CreateTask(ctx, CreateTaskInput{
			Title:       "Wire payment webhook",
			WorkspaceID: ws.ID,
			CreatedBy:   "owner@dreamshift.io",
		})
		require.NoError(t, err)
		return task
	}

	t.Run("appends to the history on every move", func(t *testing.T) {
		task := create(t)

		task, err := svc.UpdateStatus(ctx, task.ID, "In Progress", "dev@dreamshift.io")
		require.NoError(t, err)
		task, err = svc.UpdateStatus(ctx, task.ID, "In Review", "dev@dreamshift.io")
		require.NoError(t, err)

		assert.Equal(t, "In Review", task.Status)
		require.Len(t, task.StatusHistory, 3)
		last := task.StatusHistory[len(task.StatusHistory)-1]
		assert.Equal(t, "In Progress", last.From)
		assert.Equal(t, "In Review", last.To)
		assert.Equal(t, "dev@dreamshift.io", last.By)
	})

	t.Run("rejects status outside the workspace vocabulary", func(t *testing.T) {
		task := create(t)
		_, err := svc.UpdateStatus(ctx, task.ID, "Done", "dev@dreamshift.io")
		assert.ErrorIs(t, err, ErrStatusNotAllowed)
	})

	t.Run("rejects empty status", func(t *testing.T) {
		task := create(t)
		_, err := svc.UpdateStatus(ctx, task.ID, "", "dev@dreamshift.io")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("first completion stamps the end date and keeps it", func(t *testing.T) {
		task := create(t)

		task, err := svc.UpdateStatus(ctx, task.ID, "Completed", "dev@dreamshift.io")
		require.NoError(t, err)
		require.NotNil(t, task.EndDate)
		firstEnd := *task.EndDate

		// Reopen and complete again; the stamp must not move
		task, err = svc.UpdateStatus(ctx, task.ID, "In Progress", "dev@dreamshift.io")
		require.NoError(t, err)
		assert.NotNil(t, task.EndDate)

		task, err = svc.UpdateStatus(ctx, task.ID, "Completed", "dev@dreamshift.io")
		require.NoError(t, err)
		require.NotNil(t, task.EndDate)
		assert.Equal(t, firstEnd, *task.EndDate)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, uuid.New(), "Completed", "dev@dreamshift.io")
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestSubtasks(t *testing.T) {
	svc, _, ws := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, CreateTaskInput{
		Title:       "Release checklist",
		WorkspaceID: ws.ID,
		CreatedBy:   "owner@dreamshift.io",
		Subtasks:    []string{"Tag build", "Update changelog"},
	})
	require.NoError(t, err)
	require.Len(t, task.Subtasks, 2)
	assert.Equal(t, 0, task.CompletionPct)

	task, err = svc.ToggleSubtask(ctx, task.ID, task.Subtasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 50, task.CompletionPct)

	task, err = svc.ToggleSubtask(ctx, task.ID, task.Subtasks[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, task.CompletionPct)

	task, err = svc.AddSubtask(ctx, task.ID, "Announce in channel")
	require.NoError(t, err)
	require.Len(t, task.Subtasks, 3)
	assert.Equal(t, 66, task.CompletionPct)

	_, err = svc.ToggleSubtask(ctx, task.ID, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogTime(t *testing.T) {
	svc, _, ws := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, CreateTaskInput{
		Title:       "Debug flaky pipeline",
		WorkspaceID: ws.ID,
		CreatedBy:   "owner@dreamshift.io",
	})
	require.NoError(t, err)

	entry, err := svc.LogTime(ctx, LogTimeInput{
		TaskID:      task.ID,
		UserEmail:   "dev@dreamshift.io",
		Duration:    3600,
		Description: "Bisected the failing stage",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), entry.Duration)

	_, err = svc.LogTime(ctx, LogTimeInput{TaskID: task.ID, UserEmail: "dev@dreamshift.io", Duration: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.LogTime(ctx, LogTimeInput{TaskID: uuid.New(), UserEmail: "dev@dreamshift.io", Duration: 60})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	entries, err := svc.ListTimeEntries(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSetDueDate(t *testing.T) {
	svc, _, ws := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, CreateTaskInput{
		Title:       "Quarterly report",
		WorkspaceID: ws.ID,
		CreatedBy:   "owner@dreamshift.io",
	})
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)

	due := time.Date(2025, 7, 1, 17, 0, 0, 0, time.UTC)
	task, err = svc.SetDueDate(ctx, task.ID, due, "admin@dreamshift.io")
	require.NoError(t, err)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due))
}
