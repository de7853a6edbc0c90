// Package fs implements core.NoteStore as a tree of metadata files.
//
// Each note lives in its own file at a path mirroring the note's identity
// under the store root: identity "a/b/c.md" becomes "root/a/b/c.md.metadata".
// Files hold a human-readable YAML serialization of the note (without the
// relational id) and are written atomically via temp-file+rename.
// Listing is a recursive walk collecting every metadata file.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/astronote/pkg/core"
)

// metadataExt marks the files this store owns inside the root.
const metadataExt = ".metadata"

// Config holds the configuration for the file-based store.
type Config struct {
	// Root is the directory the metadata tree lives under.
	Root string
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Repository implements core.NoteStore on the filesystem.
type Repository struct {
	root   string
	logger *slog.Logger
}

// NewRepository creates a file-backed store rooted at cfg.Root.
func NewRepository(cfg Config) *Repository {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{root: cfg.Root, logger: logger}
}

// Initialize creates the root directory if needed. Subdirectories are
// created lazily on first write under a given subpath.
func (r *Repository) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(r.root, 0755); err != nil {
		return fmt.Errorf("%w: create store root %s: %v", core.ErrStorage, r.root, err)
	}
	return nil
}

// Close implements core.NoteStore. The store holds no open handles.
func (r *Repository) Close() error { return nil }

// Create implements core.NoteStore. An existing metadata file is left alone.
func (r *Repository) Create(ctx context.Context, n *core.Note) error {
	path := r.metadataPath(n.Identity)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", core.ErrStorage, path, err)
	}
	if err := r.write(n, path); err != nil {
		return err
	}
	r.logger.Debug("created note", "identity", n.Identity, "path", path)
	return nil
}

// Update implements core.NoteStore. A missing metadata file is a no-op.
func (r *Repository) Update(ctx context.Context, n *core.Note) error {
	path := r.metadataPath(n.Identity)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("%w: stat %s: %v", core.ErrStorage, path, err)
	}
	if err := r.write(n, path); err != nil {
		return err
	}
	r.logger.Debug("updated note", "identity", n.Identity, "path", path)
	return nil
}

// FindByIdentity implements core.NoteStore.
func (r *Repository) FindByIdentity(ctx context.Context, identity string) (*core.Note, error) {
	note, err := readMetadata(r.metadataPath(identity))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, identity)
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// ListDue implements core.NoteStore. The walk visits every metadata file
// under the root; ordering happens in memory after decoding.
func (r *Repository) ListDue(ctx context.Context, limit int, now time.Time, ignoreSchedule bool) ([]*core.Note, error) {
	var notes []*core.Note
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, metadataExt) {
			return nil
		}
		note, err := readMetadata(path)
		if err != nil {
			return fmt.Errorf("failed to read note metadata %s: %w", path, err)
		}
		if ignoreSchedule || note.Due(now) {
			notes = append(notes, note)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, core.ErrSerialization) || errors.Is(err, core.ErrStorage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: walk %s: %v", core.ErrStorage, r.root, err)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].NextDue.Equal(notes[j].NextDue) {
			return notes[i].Identity < notes[j].Identity
		}
		return notes[i].NextDue.Before(notes[j].NextDue)
	})
	if limit > 0 && len(notes) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

// Delete implements core.NoteStore. Empty parent directories are left in
// place; they are harmless and recreated lazily anyway.
func (r *Repository) Delete(ctx context.Context, n *core.Note) error {
	path := r.metadataPath(n.Identity)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", core.ErrNotFound, n.Identity)
	} else if err != nil {
		return fmt.Errorf("%w: stat %s: %v", core.ErrStorage, path, err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: remove %s: %v", core.ErrStorage, path, err)
	}
	r.logger.Debug("deleted note", "identity", n.Identity, "path", path)
	return nil
}

// write serializes the note and lands it atomically, creating parent
// directories on demand.
func (r *Repository) write(n *core.Note, path string) error {
	data, err := encodeMetadata(n)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: create directories for %s: %v", core.ErrStorage, path, err)
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", core.ErrStorage, path, err)
	}
	return nil
}

// metadataPath maps an identity to its metadata file under the root.
// Identities are opaque to the store; they were confined before they got here.
func (r *Repository) metadataPath(identity string) string {
	return filepath.Join(r.root, filepath.FromSlash(identity)) + metadataExt
}
