package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/events"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBadRecurrence signals a recurrence rule whose pattern or parameters
// cannot produce a next due date.
var ErrBadRecurrence = errors.New("malformed recurrence rule")

// monthlyDayCap keeps monthly recurrences safe in short months. A rule
// asking for day 31 lands on day 28 instead of spilling into the next month.
const monthlyDayCap = 28

// NextDue computes the due date of the next instance after the given
// LastGenerated anchor.
func (r Recurrence) NextDue() (time.Time, error) {
	last := r.LastGenerated
	if last.IsZero() {
		return time.Time{}, ErrBadRecurrence
	}

	switch r.Pattern {
	case RecurrenceDaily:
		return last.AddDate(0, 0, 1), nil

	case RecurrenceWeekly:
		days := (int(r.DayOfWeek) - int(last.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return last.AddDate(0, 0, days), nil

	case RecurrenceMonthly:
		if r.DayOfMonth < 1 {
			return time.Time{}, ErrBadRecurrence
		}
		day := r.DayOfMonth
		if day > monthlyDayCap {
			day = monthlyDayCap
		}
		next := time.Date(last.Year(), last.Month()+1, day,
			last.Hour(), last.Minute(), last.Second(), 0, last.Location())
		return next, nil

	case RecurrenceCustom:
		if r.IntervalDays < 1 {
			return time.Time{}, ErrBadRecurrence
		}
		return last.AddDate(0, 0, r.IntervalDays), nil
	}

	return time.Time{}, ErrBadRecurrence
}

// GeneratorSummary reports the outcome of one generation sweep.
type GeneratorSummary struct {
	Processed int      `json:"processed"`
	Generated int      `json:"generated"`
	Errored   int      `json:"errored"`
	Errors    []string `json:"errors,omitempty"`
}

// Generator sweeps active recurring task templates and materializes at most
// one due instance per template per sweep. One template failing never blocks
// the rest of the sweep.
type Generator struct {
	repo   TaskRepository
	redis  *cache.RedisClient
	logger *zap.Logger
}

func NewGenerator(repo TaskRepository, redis *cache.RedisClient, logger *zap.Logger) *Generator {
	return &Generator{repo: repo, redis: redis, logger: logger}
}

// Run performs a single sweep. For each active template it advances
// LastGenerated with a conditional update before creating the instance, so
// two overlapping sweeps cannot both generate for the same template.
func (g *Generator) Run(ctx context.Context, now time.Time) (*GeneratorSummary, error) {
	templates, err := g.repo.FindRecurring(ctx)
	if err != nil {
		return nil, err
	}

	summary := &GeneratorSummary{}
	for i := range templates {
		tmpl := &templates[i]
		summary.Processed++

		generated, err := g.processTemplate(ctx, tmpl, now)
		if err != nil {
			summary.Errored++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("task %s: %v", tmpl.ID, err))
			g.logger.Error("Recurring task generation failed",
				zap.String("task_id", tmpl.ID.String()),
				zap.Error(err))
			continue
		}
		summary.Generated += generated
	}

	g.logger.Info("Recurring sweep finished",
		zap.Int("processed", summary.Processed),
		zap.Int("generated", summary.Generated),
		zap.Int("errored", summary.Errored))

	return summary, nil
}

// processTemplate handles one template. An expired rule is deactivated and
// generates nothing; otherwise the instance due next is created if its time
// has come. Returns the number of instances created.
func (g *Generator) processTemplate(ctx context.Context, tmpl *Task, now time.Time) (int, error) {
	if tmpl.Recurrence == nil || !tmpl.Recurrence.Active {
		return 0, nil
	}

	rec := *tmpl.Recurrence

	// An end date in the past stops the rule outright, whatever the
	// pattern and however far behind last_generated sits.
	if rec.EndDate != nil && now.After(*rec.EndDate) {
		deactivated := rec
		deactivated.Active = false
		if _, err := g.repo.AdvanceRecurrence(ctx, tmpl.ID, rec, deactivated); err != nil {
			return 0, err
		}
		return 0, nil
	}

	nextDue, err := rec.NextDue()
	if err != nil {
		return 0, err
	}
	if nextDue.After(now) {
		return 0, nil
	}

	advanced := rec
	advanced.LastGenerated = nextDue
	ok, err := g.repo.AdvanceRecurrence(ctx, tmpl.ID, rec, advanced)
	if err != nil {
		return 0, err
	}
	if !ok {
		// Another sweep got here first
		return 0, nil
	}

	instance := g.buildInstance(tmpl, nextDue, now)
	if err := g.repo.Create(ctx, instance); err != nil {
		return 0, err
	}
	g.publishGenerated(ctx, tmpl, instance)

	return 1, nil
}

func (g *Generator) publishGenerated(ctx context.Context, tmpl, instance *Task) {
	if g.redis == nil {
		return
	}

	event := &events.WorkspaceEvent{
		EventType:   events.EventTaskGenerated,
		WorkspaceID: instance.WorkspaceID,
		EntityID:    instance.ID,
		ActorEmail:  instance.CreatedBy,
		Timestamp:   time.Now().UTC(),
		Details: map[string]interface{}{
			"template_id": tmpl.ID.String(),
			"due_date":    instance.DueDate,
		},
	}
	if err := g.redis.PublishWorkspaceEvent(ctx, event); err != nil {
		g.logger.Warn("Failed to publish task generated event",
			zap.String("task_id", instance.ID.String()),
			zap.Error(err))
	}
}

// buildInstance clones a template into a fresh task instance. The instance
// carries no recurrence rule and starts with a clean history.
func (g *Generator) buildInstance(tmpl *Task, dueDate time.Time, now time.Time) *Task {
	initialStatus := tmpl.Status
	if len(tmpl.StatusHistory) > 0 {
		initialStatus = tmpl.StatusHistory[0].To
	}

	subtasks := make(SubtaskList, 0, len(tmpl.Subtasks))
	for _, st := range tmpl.Subtasks {
		subtasks = append(subtasks, Subtask{ID: uuid.New(), Title: st.Title})
	}

	due := dueDate
	return &Task{
		ID:            uuid.New(),
		Title:         tmpl.Title,
		Description:   tmpl.Description,
		AssigneeEmail: tmpl.AssigneeEmail,
		Status:        initialStatus,
		Priority:      tmpl.Priority,
		DueDate:       &due,
		Subtasks:      subtasks,
		StatusHistory: StatusHistory{{From: "", To: initialStatus, By: tmpl.CreatedBy, At: now}},
		ProjectID:     tmpl.ProjectID,
		WorkspaceID:   tmpl.WorkspaceID,
		CreatedBy:     tmpl.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
