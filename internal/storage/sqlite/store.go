// Package sqlite provides the relational deployment of the entity store
// contract. Each entity kind gets its own table with an AUTOINCREMENT id
// column and the entity payload as JSON, so ids are never reused after
// deletions, matching the in-memory backend.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"planner/internal/storage"
)

// Table names, one per entity kind.
const (
	TableUsers         = "users"
	TableDays          = "days"
	TableTasks         = "tasks"
	TableNotifications = "notifications"
)

// DB wraps the shared sqlite connection used by the per-kind stores.
type DB struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Open initializes the sqlite database at dbPath and creates the entity
// tables when missing.
func Open(dbPath string, logger *slog.Logger) (*DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	d := &DB{db: conn, logger: logger}
	if err := d.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the database resources.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (d *DB) migrate() error {
	for _, table := range []string{TableUsers, TableDays, TableTasks, TableNotifications} {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            data TEXT NOT NULL
        );`, table)
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Store serves one entity kind from its table. Predicate filters are
// evaluated in Go over an id-ordered scan, which keeps the backend
// interchangeable with the in-memory one behind the same contract.
type Store[T any, P storage.Ptr[T]] struct {
	db    *DB
	table string
}

// NewStore binds a per-kind store to one of the entity tables.
func NewStore[T any, P storage.Ptr[T]](db *DB, table string) *Store[T, P] {
	return &Store[T, P]{db: db, table: table}
}

// Insert stores e and assigns it the id issued by AUTOINCREMENT.
func (s *Store[T, P]) Insert(ctx context.Context, e P) (P, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", s.table, err)
	}

	res, err := s.db.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s(data) VALUES(?)`, s.table), string(data))
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", s.table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%s id: %w", s.table, err)
	}
	e.SetEntityID(id)
	return e, nil
}

// Get returns the entity with the given id.
func (s *Store[T, P]) Get(ctx context.Context, id int64) (P, error) {
	var data string
	err := s.db.db.GetContext(ctx, &data, fmt.Sprintf(`SELECT data FROM %s WHERE id = ?`, s.table), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.table, err)
	}
	return s.decode(id, data)
}

// All returns every entity in insertion order.
func (s *Store[T, P]) All(ctx context.Context) ([]P, error) {
	return s.scan(ctx, nil)
}

// Filter returns the entities matching pred, in insertion order.
func (s *Store[T, P]) Filter(ctx context.Context, pred func(P) bool) ([]P, error) {
	return s.scan(ctx, pred)
}

// Update rewrites the stored payload for the entity's id.
func (s *Store[T, P]) Update(ctx context.Context, e P) (P, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", s.table, err)
	}

	res, err := s.db.db.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET data = ? WHERE id = ?`, s.table), string(data), e.EntityID())
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, storage.ErrNotFound
	}
	return e, nil
}

// Delete removes and returns the entity with the given id. AUTOINCREMENT
// guarantees the id is never reissued.
func (s *Store[T, P]) Delete(ctx context.Context, id int64) (P, error) {
	removed, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table), id); err != nil {
		return nil, fmt.Errorf("delete %s: %w", s.table, err)
	}
	return removed, nil
}

type row struct {
	ID   int64  `db:"id"`
	Data string `db:"data"`
}

func (s *Store[T, P]) scan(ctx context.Context, pred func(P) bool) ([]P, error) {
	var rows []row
	err := s.db.db.SelectContext(ctx, &rows, fmt.Sprintf(`SELECT id, data FROM %s ORDER BY id`, s.table))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table, err)
	}

	out := make([]P, 0, len(rows))
	for _, r := range rows {
		e, err := s.decode(r.ID, r.Data)
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// decode unmarshals a payload and stamps the id from the column, which is
// authoritative over whatever the stored JSON carries.
func (s *Store[T, P]) decode(id int64, data string) (P, error) {
	e := P(new(T))
	if err := json.Unmarshal([]byte(data), e); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.table, err)
	}
	e.SetEntityID(id)
	return e, nil
}
