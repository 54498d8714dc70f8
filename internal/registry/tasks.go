package registry

import (
	"context"
	"strings"
	"sync"
	"time"

	"planner/internal/models"
	"planner/internal/storage"
)

// Tasks creates, updates, deletes and lists tasks.
type Tasks struct {
	mu    sync.Mutex
	store storage.Store[*models.Task]
	now   func() time.Time
}

// NewTasks constructs the task registry on top of a task store.
func NewTasks(store storage.Store[*models.Task]) *Tasks {
	return &Tasks{store: store, now: time.Now}
}

// CreateTaskInput carries the fields accepted at task creation. UserID and
// DayID are optional references and are not checked for existence.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	UserID      *int64
	DayID       *int64
}

// UpdateTaskInput carries a strict partial update: nil fields are left
// untouched on the task.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
}

// Create stores a new task. The title is trimmed and must be non-empty;
// status defaults to "To Do" when absent.
func (t *Tasks) Create(ctx context.Context, in CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ValidationError{Field: "title"}
	}

	status := in.Status
	if status == "" {
		status = models.StatusToDo
	}

	return t.store.Insert(ctx, &models.Task{
		Title:       title,
		Description: in.Description,
		Status:      status,
		UserID:      in.UserID,
		DayID:       in.DayID,
		CreatedAt:   t.now().Truncate(time.Second),
	})
}

// Update applies the fields present in the input and returns the updated
// task. A present title is re-validated; status is stored verbatim.
func (t *Tasks) Update(ctx context.Context, id int64, in UpdateTaskInput) (*models.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "task", id)
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ValidationError{Field: "title"}
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}

	updated, err := t.store.Update(ctx, task)
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	return updated, nil
}

// Delete removes the task with the given id. Its id is never reissued.
func (t *Tasks) Delete(ctx context.Context, id int64) error {
	if _, err := t.store.Delete(ctx, id); err != nil {
		return notFound(err, "task", id)
	}
	return nil
}

// List returns all tasks in insertion order.
func (t *Tasks) List(ctx context.Context) ([]*models.Task, error) {
	return t.store.All(ctx)
}

// ForDay returns the tasks attached to the given day, in attachment order.
func (t *Tasks) ForDay(ctx context.Context, dayID int64) ([]*models.Task, error) {
	return t.store.Filter(ctx, func(e *models.Task) bool {
		return e.DayID != nil && *e.DayID == dayID
	})
}
