package registry

import (
	"context"
	"errors"
	"testing"

	"planner/internal/models"
	"planner/internal/storage/memory"
)

func newTestUsers() *Users {
	return NewUsers(memory.New[models.User]())
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	users := newTestUsers()

	u, err := users.Create(ctx, "  ana  ", "secret")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("id = %d, want 1", u.ID)
	}
	if u.Username != "ana" {
		t.Errorf("username = %q, want trimmed %q", u.Username, "ana")
	}
	if u.Password != "" {
		t.Errorf("returned user carries password %q", u.Password)
	}
}

func TestCreateUserValidation(t *testing.T) {
	ctx := context.Background()
	users := newTestUsers()

	cases := []struct {
		name     string
		username string
		password string
		field    string
	}{
		{"empty username", "", "pw", "username"},
		{"blank username", "   ", "pw", "username"},
		{"empty password", "ana", "", "password"},
		{"blank password", "ana", "   ", "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.Create(ctx, tc.username, tc.password)
			var validation ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if validation.Field != tc.field {
				t.Errorf("field = %q, want %q", validation.Field, tc.field)
			}
		})
	}
}

func TestCreateUserConflict(t *testing.T) {
	ctx := context.Background()
	users := newTestUsers()

	if _, err := users.Create(ctx, "ana", "pw"); err != nil {
		t.Fatalf("creating first user: %v", err)
	}

	_, err := users.Create(ctx, "ana", "other")
	var conflict ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("duplicate username err = %v, want ConflictError", err)
	}

	// Username matching is case-sensitive, so "Ana" is a different user.
	if _, err := users.Create(ctx, "Ana", "pw"); err != nil {
		t.Fatalf("creating case-variant user: %v", err)
	}
}

func TestListUsersExcludesPasswords(t *testing.T) {
	ctx := context.Background()
	users := newTestUsers()

	for _, name := range []string{"ana", "ben"} {
		if _, err := users.Create(ctx, name, "pw"); err != nil {
			t.Fatalf("creating user %s: %v", name, err)
		}
	}

	list, err := users.List(ctx)
	if err != nil {
		t.Fatalf("listing users: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].Username != "ana" || list[1].Username != "ben" {
		t.Errorf("unexpected order: %q, %q", list[0].Username, list[1].Username)
	}
	for _, u := range list {
		if u.Password != "" {
			t.Errorf("user %s exposes password", u.Username)
		}
	}
}
