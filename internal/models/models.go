package models

import "time"

// User is a registered account. Password stays internal: the user registry
// blanks it before a user leaves the core, and omitempty keeps the blank
// field out of every JSON representation.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// Day groups tasks under a single calendar date.
type Day struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	// Tasks is a derived view over tasks whose DayID points here. It is
	// populated on read; ownership lives on Task.DayID.
	Tasks []*Task `json:"tasks"`
}

// Task is a single unit of work, optionally assigned to a user and a day.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      *int64    `json:"user_id"`
	DayID       *int64    `json:"day_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notification is a message surfaced to a user, optionally tied to a task.
// It starts unread and transitions to read exactly once.
type Notification struct {
	ID        int64      `json:"id"`
	Message   string     `json:"message"`
	UserID    *int64     `json:"user_id"`
	TaskID    *int64     `json:"task_id"`
	Type      string     `json:"type"`
	Title     string     `json:"title,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}

// Suggested task statuses. Registries store status verbatim, so these are
// defaults and documentation rather than an enforced enum.
const (
	StatusToDo  = "To Do"
	StatusDoing = "Doing"
	StatusDone  = "Done"
)

// Suggested notification types, accepted verbatim like task statuses.
const (
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeSuccess = "success"
	TypeError   = "error"
)

// EntityID implements storage.Entity.
func (u *User) EntityID() int64 { return u.ID }

// SetEntityID implements storage.Entity.
func (u *User) SetEntityID(id int64) { u.ID = id }

// EntityID implements storage.Entity.
func (d *Day) EntityID() int64 { return d.ID }

// SetEntityID implements storage.Entity.
func (d *Day) SetEntityID(id int64) { d.ID = id }

// EntityID implements storage.Entity.
func (t *Task) EntityID() int64 { return t.ID }

// SetEntityID implements storage.Entity.
func (t *Task) SetEntityID(id int64) { t.ID = id }

// EntityID implements storage.Entity.
func (n *Notification) EntityID() int64 { return n.ID }

// SetEntityID implements storage.Entity.
func (n *Notification) SetEntityID(id int64) { n.ID = id }
