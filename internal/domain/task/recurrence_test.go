package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNextDue(t *testing.T) {
	anchor := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC) // a Wednesday

	tests := []struct {
		name    string
		rec     Recurrence
		want    time.Time
		wantErr error
	}{
		{
			name: "daily advances one day",
			rec:  Recurrence{Pattern: RecurrenceDaily, LastGenerated: anchor},
			want: anchor.AddDate(0, 0, 1),
		},
		{
			name: "weekly lands on the next target weekday",
			rec:  Recurrence{Pattern: RecurrenceWeekly, DayOfWeek: time.Friday, LastGenerated: anchor},
			want: time.Date(2025, 1, 17, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "weekly on the same weekday skips a full week",
			rec:  Recurrence{Pattern: RecurrenceWeekly, DayOfWeek: time.Wednesday, LastGenerated: anchor},
			want: anchor.AddDate(0, 0, 7),
		},
		{
			name: "monthly lands on the target day next month",
			rec:  Recurrence{Pattern: RecurrenceMonthly, DayOfMonth: 20, LastGenerated: anchor},
			want: time.Date(2025, 2, 20, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "monthly clamps day 31 to 28",
			rec:  Recurrence{Pattern: RecurrenceMonthly, DayOfMonth: 31, LastGenerated: anchor},
			want: time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "custom advances by the interval",
			rec:  Recurrence{Pattern: RecurrenceCustom, IntervalDays: 10, LastGenerated: anchor},
			want: anchor.AddDate(0, 0, 10),
		},
		{
			name:    "custom without interval is malformed",
			rec:     Recurrence{Pattern: RecurrenceCustom, LastGenerated: anchor},
			wantErr: ErrBadRecurrence,
		},
		{
			name:    "monthly without a day is malformed",
			rec:     Recurrence{Pattern: RecurrenceMonthly, LastGenerated: anchor},
			wantErr: ErrBadRecurrence,
		},
		{
			name:    "unknown pattern is malformed",
			rec:     Recurrence{Pattern: "fortnightly", LastGenerated: anchor},
			wantErr: ErrBadRecurrence,
		},
		{
			name:    "zero anchor is malformed",
			rec:     Recurrence{Pattern: RecurrenceDaily},
			wantErr: ErrBadRecurrence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rec.NextDue()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func newRecurringTemplate(repo *mockTaskRepository, rec Recurrence) *Task {
	tmpl := &Task{
		ID:          uuid.New(),
		Title:       "Weekly standup notes",
		Status:      "To Do",
		Priority:    TaskPriorityNormal,
		WorkspaceID: uuid.New(),
		CreatedBy:   "owner@dreamshift.io",
		Recurrence:  &rec,
		Subtasks: SubtaskList{
			{ID: uuid.New(), Title: "Collect updates", Completed: true},
		},
	}
	repo.tasks[tmpl.ID] = tmpl
	return tmpl
}

func TestGeneratorRun(t *testing.T) {
	ctx := context.Background()

	t.Run("generates exactly one due instance and advances the anchor", func(t *testing.T) {
		repo := newMockTaskRepository()
		anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		tmpl := newRecurringTemplate(repo, Recurrence{
			Pattern:       RecurrenceDaily,
			LastGenerated: anchor,
			Active:        true,
		})

		gen := NewGenerator(repo, nil, zap.NewNop())
		now := time.Date(2024, 1, 2, 0, 0, 1, 0, time.UTC)
		summary, err := gen.Run(ctx, now)
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Processed)
		assert.Equal(t, 1, summary.Generated)
		assert.Equal(t, 0, summary.Errored)

		// Template plus the one instance
		assert.Len(t, repo.tasks, 2)

		stored := repo.tasks[tmpl.ID]
		assert.True(t, stored.Recurrence.LastGenerated.Equal(anchor.AddDate(0, 0, 1)))

		for id, task := range repo.tasks {
			if id == tmpl.ID {
				continue
			}
			assert.Nil(t, task.Recurrence)
			assert.Equal(t, "To Do", task.Status)
			assert.Nil(t, task.EndDate)
			require.Len(t, task.StatusHistory, 1)
			require.NotNil(t, task.DueDate)
			assert.True(t, task.DueDate.Equal(anchor.AddDate(0, 0, 1)))
			// Subtasks are cloned unchecked
			require.Len(t, task.Subtasks, 1)
			assert.False(t, task.Subtasks[0].Completed)
			assert.NotEqual(t, tmpl.Subtasks[0].ID, task.Subtasks[0].ID)
		}
	})

	t.Run("a template behind by several days catches up one sweep at a time", func(t *testing.T) {
		repo := newMockTaskRepository()
		anchor := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
		newRecurringTemplate(repo, Recurrence{
			Pattern:       RecurrenceDaily,
			LastGenerated: anchor,
			Active:        true,
		})

		gen := NewGenerator(repo, nil, zap.NewNop())
		now := anchor.AddDate(0, 0, 2)

		first, err := gen.Run(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, first.Generated)

		second, err := gen.Run(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, second.Generated)

		third, err := gen.Run(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 0, third.Generated)
	})

	t.Run("an end date in the past deactivates without generating", func(t *testing.T) {
		repo := newMockTaskRepository()
		anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
		tmpl := newRecurringTemplate(repo, Recurrence{
			Pattern:       RecurrenceDaily,
			LastGenerated: anchor,
			EndDate:       &end,
			Active:        true,
		})

		gen := NewGenerator(repo, nil, zap.NewNop())
		summary, err := gen.Run(ctx, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, 0, summary.Generated)
		assert.False(t, repo.tasks[tmpl.ID].Recurrence.Active)
		assert.Len(t, repo.tasks, 1)

		// A later sweep skips the deactivated template entirely
		again, err := gen.Run(ctx, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 0, again.Processed)
	})

	t.Run("an end date still ahead does not block generation", func(t *testing.T) {
		repo := newMockTaskRepository()
		anchor := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
		end := anchor.AddDate(0, 0, 30)
		newRecurringTemplate(repo, Recurrence{
			Pattern:       RecurrenceDaily,
			LastGenerated: anchor,
			EndDate:       &end,
			Active:        true,
		})

		gen := NewGenerator(repo, nil, zap.NewNop())
		summary, err := gen.Run(ctx, anchor.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Generated)
	})

	t.Run("one malformed rule does not block the sweep", func(t *testing.T) {
		repo := newMockTaskRepository()
		anchor := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
		newRecurringTemplate(repo, Recurrence{
			Pattern:       RecurrenceCustom, // no interval
			LastGenerated: anchor,
			Active:        true,
		})
		newRecurringTemplate(repo, Recurrence{
			Pattern:       RecurrenceDaily,
			LastGenerated: anchor,
			Active:        true,
		})

		gen := NewGenerator(repo, nil, zap.NewNop())
		summary, err := gen.Run(ctx, anchor.AddDate(0, 0, 1))
		require.NoError(t, err)

		assert.Equal(t, 2, summary.Processed)
		assert.Equal(t, 1, summary.Generated)
		assert.Equal(t, 1, summary.Errored)
		require.Len(t, summary.Errors, 1)
		assert.Contains(t, summary.Errors[0], "malformed recurrence rule")
	})

	t.Run("nothing due yet", func(t *testing.T) {
		repo := newMockTaskRepository()
		anchor := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
		newRecurringTemplate(repo, Recurrence{
			Pattern:       RecurrenceWeekly,
			DayOfWeek:     time.Friday,
			LastGenerated: anchor,
			Active:        true,
		})

		gen := NewGenerator(repo, nil, zap.NewNop())
		summary, err := gen.Run(ctx, anchor.Add(12*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Processed)
		assert.Equal(t, 0, summary.Generated)
	})
}
