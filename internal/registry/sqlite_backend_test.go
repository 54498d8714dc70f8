package registry

import (
	"context"
	"path/filepath"
	"testing"

	"planner/internal/models"
	"planner/internal/storage/sqlite"
)

// The registries must behave identically over the relational backend; this
// exercises the day/task link and the read-state transition against sqlite.
func TestRegistriesOverSQLite(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "planner.db"), nil)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("closing database: %v", err)
		}
	})

	tasks := NewTasks(sqlite.NewStore[models.Task](db, sqlite.TableTasks))
	days := NewDays(sqlite.NewStore[models.Day](db, sqlite.TableDays), tasks)
	center := NewNotifications(sqlite.NewStore[models.Notification](db, sqlite.TableNotifications))

	day, err := days.Create(ctx, "2024-03-15")
	if err != nil {
		t.Fatalf("creating day: %v", err)
	}
	task, err := days.AttachTask(ctx, day.ID, AttachTaskInput{Title: "standup", Description: "daily sync"})
	if err != nil {
		t.Fatalf("attaching task: %v", err)
	}

	got, err := days.Get(ctx, day.ID)
	if err != nil {
		t.Fatalf("reading day: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ID != task.ID {
		t.Fatalf("day tasks = %+v, want the attached task", got.Tasks)
	}

	updated, err := tasks.Update(ctx, task.ID, UpdateTaskInput{Status: strptr(models.StatusDone)})
	if err != nil {
		t.Fatalf("updating task: %v", err)
	}
	if updated.Status != models.StatusDone || updated.Title != "standup" {
		t.Errorf("partial update over sqlite broke fields: %+v", updated)
	}

	n, err := center.Create(ctx, CreateNotificationInput{Message: "standup moved", TaskID: &task.ID})
	if err != nil {
		t.Fatalf("creating notification: %v", err)
	}
	read, err := center.MarkRead(ctx, n.ID)
	if err != nil {
		t.Fatalf("marking read: %v", err)
	}
	if !read.IsRead || read.ReadAt == nil {
		t.Fatalf("notification not read: %+v", read)
	}

	again, err := center.MarkRead(ctx, n.ID)
	if err != nil {
		t.Fatalf("marking read twice: %v", err)
	}
	if !again.ReadAt.Equal(*read.ReadAt) {
		t.Errorf("read_at moved from %v to %v", read.ReadAt, again.ReadAt)
	}
}
