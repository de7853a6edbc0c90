// Package sqlite implements core.NoteStore on an embedded SQLite database.
//
// The driver is ncruces/go-sqlite3 (pure Go, wasm-based), so the backend
// needs no cgo. One table keyed by a unique identity holds the due timestamp
// and the tagged scheduler state as a JSON blob; the schema is created
// idempotently when the store is initialized.
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
	"time"

	"github.com/aretw0/astronote/pkg/core"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// timeLayout is the stored timestamp format: RFC 3339 at second precision,
// always UTC, so lexicographic ORDER BY equals chronological order.
const timeLayout = "2006-01-02T15:04:05Z07:00"

// Config holds the configuration for the relational store.
type Config struct {
	// Path is the database file location. Parent directories are created.
	Path string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Repository implements core.NoteStore backed by SQLite.
type Repository struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewRepository opens (or creates) the database file and verifies the
// connection. The caller must call Close when done.
func NewRepository(cfg Config) (*Repository, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create database directory: %v", core.ErrStorage, err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database %s: %v", core.ErrStorage, cfg.Path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping database %s: %v", core.ErrStorage, cfg.Path, err)
	}

	// WAL keeps reads cheap; busy_timeout covers another process holding
	// the file briefly. No further locking, last writer wins.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %s: %v", core.ErrStorage, pragma, err)
		}
	}

	return &Repository{db: db, path: cfg.Path, logger: logger}, nil
}

// Initialize creates the schema if it does not exist. Idempotent.
func (r *Repository) Initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		identity TEXT NOT NULL UNIQUE,
		next_due TEXT NOT NULL,
		scheduler_state TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_notes_next_due ON notes(next_due);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: initialize schema: %v", core.ErrStorage, err)
	}
	return nil
}

// Close checkpoints the WAL and closes the connection.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		r.logger.Warn("failed to checkpoint WAL", "error", err)
	}
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("%w: close database: %v", core.ErrStorage, err)
	}
	r.db = nil
	return nil
}

// Create implements core.NoteStore. An existing identity is left untouched.
func (r *Repository) Create(ctx context.Context, n *core.Note) error {
	identity, due, state, err := encode(n)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (identity, next_due, scheduler_state) VALUES (?, ?, ?)
		 ON CONFLICT(identity) DO NOTHING`,
		identity, due, state)
	if err != nil {
		return fmt.Errorf("%w: create note %s: %v", core.ErrStorage, identity, err)
	}
	r.logger.Debug("created note", "identity", identity)
	return nil
}

// Update implements core.NoteStore. An absent identity is a no-op.
func (r *Repository) Update(ctx context.Context, n *core.Note) error {
	identity, due, state, err := encode(n)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE notes SET next_due = ?, scheduler_state = ? WHERE identity = ?`,
		due, state, identity)
	if err != nil {
		return fmt.Errorf("%w: update note %s: %v", core.ErrStorage, identity, err)
	}
	r.logger.Debug("updated note", "identity", identity)
	return nil
}

// FindByIdentity implements core.NoteStore.
func (r *Repository) FindByIdentity(ctx context.Context, identity string) (*core.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, identity, next_due, scheduler_state FROM notes WHERE identity = ?`,
		identity)
	note, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, identity)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note %s: %w", identity, err)
	}
	return note, nil
}

// ListDue implements core.NoteStore. The ascending order comes from the
// database; limit <= 0 means unbounded (SQLite's LIMIT -1).
func (r *Repository) ListDue(ctx context.Context, limit int, now time.Time, ignoreSchedule bool) ([]*core.Note, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, identity, next_due, scheduler_state FROM notes
	          WHERE next_due <= ? ORDER BY next_due LIMIT ?`
	args := []any{now.UTC().Format(timeLayout), limit}
	if ignoreSchedule {
		query = `SELECT id, identity, next_due, scheduler_state FROM notes
		         ORDER BY next_due LIMIT ?`
		args = []any{limit}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list due notes: %v", core.ErrStorage, err)
	}
	defer rows.Close()

	var notes []*core.Note
	for rows.Next() {
		note, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to decode listed note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list due notes: %v", core.ErrStorage, err)
	}
	return notes, nil
}

// Delete implements core.NoteStore.
func (r *Repository) Delete(ctx context.Context, n *core.Note) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE identity = ?`, n.Identity)
	if err != nil {
		return fmt.Errorf("%w: delete note %s: %v", core.ErrStorage, n.Identity, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete note %s: %v", core.ErrStorage, n.Identity, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", core.ErrNotFound, n.Identity)
	}
	r.logger.Debug("deleted note", "identity", n.Identity)
	return nil
}

// encode projects a note into its column values.
func encode(n *core.Note) (identity, due, state string, err error) {
	serialized, err := n.Serialize()
	if err != nil {
		return "", "", "", err
	}
	raw, err := json.Marshal(serialized.Scheduler)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %s: %v", core.ErrSerialization, n.Identity, err)
	}
	return serialized.Identity, serialized.NextDue.UTC().Format(timeLayout), string(raw), nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scan rebuilds a note from a row.
func scan(row rowScanner) (*core.Note, error) {
	var (
		serialized core.SerializedNote
		due        string
		state      string
	)
	if err := row.Scan(&serialized.ID, &serialized.Identity, &due, &state); err != nil {
		return nil, err
	}

	nextDue, err := time.Parse(timeLayout, due)
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp %q: %v", core.ErrSerialization, due, err)
	}
	serialized.NextDue = nextDue

	if err := json.Unmarshal([]byte(state), &serialized.Scheduler); err != nil {
		return nil, fmt.Errorf("%w: bad scheduler blob for %s: %v", core.ErrSerialization, serialized.Identity, err)
	}
	return serialized.Deserialize()
}
