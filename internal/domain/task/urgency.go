package task

import "time"

// Urgency is the derived traffic-light classification of a task's due date.
// It is recomputed on every read and never stored.
type Urgency string

const (
	UrgencyOverdue Urgency = "Overdue"
	UrgencyUrgent  Urgency = "Urgent"
	UrgencyNormal  Urgency = "Normal"
)

// urgentWindow is how far ahead of the due date a task counts as urgent.
const urgentWindow = 48 * time.Hour

// ComputeUrgency classifies a due date relative to now. A task with no due
// date is always Normal; at or past the due date it is Overdue.
func ComputeUrgency(dueDate *time.Time, now time.Time) Urgency {
	if dueDate == nil {
		return UrgencyNormal
	}

	diff := dueDate.Sub(now)
	if diff <= 0 {
		return UrgencyOverdue
	}
	if diff <= urgentWindow {
		return UrgencyUrgent
	}
	return UrgencyNormal
}

// Urgency classifies this task's due date relative to now.
func (t *Task) Urgency(now time.Time) Urgency {
	return ComputeUrgency(t.DueDate, now)
}
