// Package astronote is the composition root for the astronote engine.
//
// It connects the scheduling core (Domain Layer) with the storage adapters
// (Persistence Layer): a Note binds a file identity to a due date and an
// owned spaced-repetition algorithm, a NoteStore persists notes durably, and
// the Service runs the review workflow on top.
//
// Philosophy:
//
// Astronote treats a tree of plain files as a review queue. The engine is
// purely computational; all I/O lives behind the core.NoteStore capability
// interface, with two interchangeable backends:
//
//   - SQLite (default): one table keyed by identity, scheduler state as a
//     tagged JSON blob.
//   - File tree: one human-readable YAML metadata file per note, mirroring
//     the note's identity under a root directory.
//
// The scheduling algorithm is pluggable. Stored state is self-describing
// (a type tag plus opaque payload), so new algorithms can be added without
// touching the storage schema. SM-2 is the reference implementation.
//
// Usage:
//
//	store, err := astronote.Open(ctx, astronote.BackendSQLite, "notes.db")
//	if err != nil { ... }
//	defer store.Close()
//
//	svc := astronote.NewService(store)
//	added, err := svc.Track(ctx, []string{"plans/rocketry.md"})
package astronote
