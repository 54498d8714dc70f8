package registry

import (
	"context"
	"strings"
	"time"

	"planner/internal/models"
	"planner/internal/storage"
)

// Days creates calendar days and attaches tasks to them. A day's task list
// is derived from Task.DayID on every read, so attaching is atomic as
// observed by readers: the task either exists with its day link set or not
// at all.
type Days struct {
	store storage.Store[*models.Day]
	tasks *Tasks
	now   func() time.Time
}

// NewDays constructs the day registry. Attached tasks are created through
// the task registry so they show up in the global task list as well.
func NewDays(store storage.Store[*models.Day], tasks *Tasks) *Days {
	return &Days{store: store, tasks: tasks, now: time.Now}
}

// AttachTaskInput carries the fields accepted when attaching a task to a
// day. Unlike plain task creation, the description is required.
type AttachTaskInput struct {
	Title       string
	Description string
	Status      string
	UserID      *int64
}

// Create stores a new day. An empty date defaults to today's ISO date.
func (d *Days) Create(ctx context.Context, date string) (*models.Day, error) {
	if date == "" {
		date = d.now().Format(time.DateOnly)
	}
	day, err := d.store.Insert(ctx, &models.Day{Date: date})
	if err != nil {
		return nil, err
	}
	day.Tasks = make([]*models.Task, 0)
	return day, nil
}

// AttachTask creates a task linked to the given day. The day must exist and
// both title and description must be non-empty after trimming; on failure no
// task is created.
func (d *Days) AttachTask(ctx context.Context, dayID int64, in AttachTaskInput) (*models.Task, error) {
	if _, err := d.store.Get(ctx, dayID); err != nil {
		return nil, notFound(err, "day", dayID)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ValidationError{Field: "title"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, ValidationError{Field: "description"}
	}

	return d.tasks.Create(ctx, CreateTaskInput{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		UserID:      in.UserID,
		DayID:       &dayID,
	})
}

// Get returns the day with its task list populated.
func (d *Days) Get(ctx context.Context, id int64) (*models.Day, error) {
	day, err := d.store.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "day", id)
	}
	return d.withTasks(ctx, day)
}

// List returns all days in insertion order, each with its nested task list.
func (d *Days) List(ctx context.Context) ([]*models.Day, error) {
	days, err := d.store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Day, len(days))
	for i, day := range days {
		if out[i], err = d.withTasks(ctx, day); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// withTasks returns a copy of the day with the derived task list filled in.
func (d *Days) withTasks(ctx context.Context, day *models.Day) (*models.Day, error) {
	tasks, err := d.tasks.ForDay(ctx, day.ID)
	if err != nil {
		return nil, err
	}
	view := *day
	view.Tasks = tasks
	return &view, nil
}
