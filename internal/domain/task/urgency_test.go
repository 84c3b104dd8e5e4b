package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeUrgency(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	ptr := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name    string
		dueDate *time.Time
		want    Urgency
	}{
		{
			name:    "no due date is normal",
			dueDate: nil,
			want:    UrgencyNormal,
		},
		{
			name:    "due exactly now is overdue",
			dueDate: ptr(now),
			want:    UrgencyOverdue,
		},
		{
			name:    "due in the past is overdue",
			dueDate: ptr(now.Add(-72 * time.Hour)),
			want:    UrgencyOverdue,
		},
		{
			name:    "due one second ago is overdue",
			dueDate: ptr(now.Add(-time.Second)),
			want:    UrgencyOverdue,
		},
		{
			name:    "due in one hour is urgent",
			dueDate: ptr(now.Add(time.Hour)),
			want:    UrgencyUrgent,
		},
		{
			name:    "due exactly 48 hours out is urgent",
			dueDate: ptr(now.Add(48 * time.Hour)),
			want:    UrgencyUrgent,
		},
		{
			name:    "due just past 48 hours is normal",
			dueDate: ptr(now.Add(48*time.Hour + time.Second)),
			want:    UrgencyNormal,
		},
		{
			name:    "due next month is normal",
			dueDate: ptr(now.AddDate(0, 1, 0)),
			want:    UrgencyNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeUrgency(tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskUrgency(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(24 * time.Hour)

	task := &Task{Title: "Ship release notes", DueDate: &due}
	assert.Equal(t, UrgencyUrgent, task.Urgency(now))

	task.DueDate = nil
	assert.Equal(t, UrgencyNormal, task.Urgency(now))
}
