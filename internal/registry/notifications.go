package registry

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"planner/internal/models"
	"planner/internal/storage"
)

// Notifications creates, filters and marks notifications as read.
type Notifications struct {
	mu    sync.Mutex
	store storage.Store[*models.Notification]
	now   func() time.Time
}

// NewNotifications constructs the notification center on top of a
// notification store.
func NewNotifications(store storage.Store[*models.Notification]) *Notifications {
	return &Notifications{store: store, now: time.Now}
}

// CreateNotificationInput carries the fields accepted at notification
// creation. UserID and TaskID are optional references and are not checked
// for existence; Type is accepted verbatim.
type CreateNotificationInput struct {
	Message string
	UserID  *int64
	TaskID  *int64
	Type    string
	Title   string
}

// NotificationFilter narrows a listing. A nil UserID matches every user.
type NotificationFilter struct {
	UserID     *int64
	UnreadOnly bool
}

// Create stores a new unread notification. The message must be non-empty
// after trimming; type defaults to "info".
func (n *Notifications) Create(ctx context.Context, in CreateNotificationInput) (*models.Notification, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ValidationError{Field: "message"}
	}

	typ := in.Type
	if typ == "" {
		typ = models.TypeInfo
	}

	return n.store.Insert(ctx, &models.Notification{
		Message:   message,
		UserID:    in.UserID,
		TaskID:    in.TaskID,
		Type:      typ,
		Title:     in.Title,
		CreatedAt: n.now().Truncate(time.Second),
	})
}

// List returns the notifications matching the filter, newest first.
// Creation timestamps have second granularity, so equal timestamps are
// possible; ids are insertion-ordered and break the tie toward the most
// recently inserted.
func (n *Notifications) List(ctx context.Context, f NotificationFilter) ([]*models.Notification, error) {
	out, err := n.store.Filter(ctx, func(e *models.Notification) bool {
		if f.UserID != nil && (e.UserID == nil || *e.UserID != *f.UserID) {
			return false
		}
		if f.UnreadOnly && e.IsRead {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// MarkRead transitions the notification to read and stamps read_at. The
// transition is one-way and idempotent: marking an already-read
// notification returns it unchanged with its original read_at.
func (n *Notifications) MarkRead(ctx context.Context, id int64) (*models.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	notif, err := n.store.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "notification", id)
	}
	if notif.IsRead {
		return notif, nil
	}

	readAt := n.now().Truncate(time.Second)
	notif.IsRead = true
	notif.ReadAt = &readAt

	updated, err := n.store.Update(ctx, notif)
	if err != nil {
		return nil, notFound(err, "notification", id)
	}
	return updated, nil
}
