package astronote

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/astronote/pkg/adapters/fs"
	"github.com/aretw0/astronote/pkg/adapters/sqlite"
	"github.com/aretw0/astronote/pkg/core"
)

// Version exposes the version of the library.
const Version = "0.2.0"

// Backend names understood by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Public aliases so callers only need this package for the common path.
type (
	Note           = core.Note
	SerializedNote = core.SerializedNote
	NoteStore      = core.NoteStore
	Service        = core.Service
)

// NewService creates a Service over an open store.
var NewService = core.NewService

// Option configures Open.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger wired into the chosen backend.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Open creates and initializes a NoteStore.
//
// For BackendSQLite, location is the database file; for BackendFile it is
// the metadata root directory. The caller must Close the returned store.
func Open(ctx context.Context, backend, location string, opts ...Option) (core.NoteStore, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	var store core.NoteStore
	switch backend {
	case BackendSQLite:
		repo, err := sqlite.NewRepository(sqlite.Config{Path: location, Logger: o.logger})
		if err != nil {
			return nil, err
		}
		store = repo
	case BackendFile:
		store = fs.NewRepository(fs.Config{Root: location, Logger: o.logger})
	default:
		return nil, fmt.Errorf("unsupported backend %q", backend)
	}

	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
