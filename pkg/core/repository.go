package core

import (
	"context"
	"time"
)

// NoteStore defines the contract for durably storing notes.
//
// Both implementations (relational SQLite, hierarchical file tree) honor the
// same semantics, so swapping backends never changes a decoded Note:
//
//   - Create is "create if absent": an existing identity makes it a no-op,
//     never an error.
//   - Update mirrors that: "update if present", a no-op for absent identities.
//   - FindByIdentity and Delete fail with ErrNotFound for absent identities.
//
// Identities are opaque unique strings here; canonicalization and root
// confinement happen before a path ever becomes an identity (platform.Confine).
type NoteStore interface {
	// Initialize ensures the underlying storage is ready
	// (create directories, run schema migration).
	Initialize(ctx context.Context) error

	// Create persists a new note. No-op if the identity already exists.
	Create(ctx context.Context, n *Note) error

	// Update overwrites the stored note with the same identity.
	// No-op if the identity does not exist.
	Update(ctx context.Context, n *Note) error

	// FindByIdentity retrieves a single note. ErrNotFound if absent.
	FindByIdentity(ctx context.Context, identity string) (*Note, error)

	// ListDue returns notes with NextDue <= now (all notes when
	// ignoreSchedule), ascending by NextDue, truncated to limit.
	// A limit <= 0 means unbounded.
	ListDue(ctx context.Context, limit int, now time.Time, ignoreSchedule bool) ([]*Note, error)

	// Delete removes the note. ErrNotFound if absent.
	Delete(ctx context.Context, n *Note) error

	// Close releases the store's resources (connections, handles).
	Close() error
}
