// Package registry holds the entity lifecycle logic: creation, linking,
// partial updates, filtered listing and state transitions for users, days,
// tasks and notifications. Registries receive already-parsed structured input
// and return entities plus typed errors; they know nothing about HTTP.
package registry

import (
	"context"
	"strings"
	"sync"

	"planner/internal/models"
	"planner/internal/storage"
)

// Users creates and lists user accounts, enforcing username uniqueness.
type Users struct {
	mu    sync.Mutex
	store storage.Store[*models.User]
}

// NewUsers constructs the user registry on top of a user store.
func NewUsers(store storage.Store[*models.User]) *Users {
	return &Users{store: store}
}

// Create registers a new user. Username and password are trimmed and must be
// non-empty; the username must not match an existing one (case-sensitive).
// The returned user carries no password.
func (u *Users) Create(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" {
		return nil, ValidationError{Field: "username"}
	}
	if password == "" {
		return nil, ValidationError{Field: "password"}
	}

	// The uniqueness check and the insert must not interleave with a
	// concurrent create of the same username.
	u.mu.Lock()
	defer u.mu.Unlock()

	taken, err := u.store.Filter(ctx, func(e *models.User) bool {
		return e.Username == username
	})
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, ConflictError{Field: "username", Value: username}
	}

	created, err := u.store.Insert(ctx, &models.User{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	return sanitize(created), nil
}

// List returns all users in insertion order, passwords excluded.
func (u *Users) List(ctx context.Context) ([]*models.User, error) {
	users, err := u.store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.User, len(users))
	for i, e := range users {
		out[i] = sanitize(e)
	}
	return out, nil
}

// sanitize returns a copy of the user with the password blanked.
func sanitize(u *models.User) *models.User {
	clean := *u
	clean.Password = ""
	return &clean
}
