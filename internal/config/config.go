// Package config loads the per-project .astronote.toml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/aretw0/astronote/internal/platform"
)

// Backend names accepted in the config file.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// systemDir is the hidden directory the default database lives in.
const systemDir = ".astronote"

// Config holds user-configurable settings for one tracked tree.
type Config struct {
	// Root is the directory note identities are relative to.
	// Relative values are resolved against the config file's directory;
	// empty means the config file's directory itself.
	Root string `toml:"root"`

	// Backend selects the store implementation: "sqlite" (default) or "file".
	Backend string `toml:"backend"`

	// Database is the store location: the database file for sqlite, the
	// metadata root directory for the file backend. Relative values are
	// resolved against Root.
	Database string `toml:"database"`

	// Editor is the command used to open notes during review.
	// Empty falls back to $EDITOR, then vi.
	Editor string `toml:"editor"`
}

// Load reads and finalizes a config file. Unknown keys are rejected so a
// typo fails loudly instead of silently using defaults.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}

	base := filepath.Dir(path)
	if cfg.Root == "" {
		cfg.Root = base
	} else if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(base, cfg.Root)
	}

	if cfg.Backend == "" {
		cfg.Backend = BackendSQLite
	}
	if cfg.Backend != BackendSQLite && cfg.Backend != BackendFile {
		return Config{}, fmt.Errorf("unsupported backend %q in %s", cfg.Backend, path)
	}

	if cfg.Database == "" {
		switch cfg.Backend {
		case BackendSQLite:
			cfg.Database = filepath.Join(cfg.Root, systemDir, "notes.db")
		case BackendFile:
			cfg.Database = filepath.Join(cfg.Root, systemDir, "metadata")
		}
	} else if !filepath.IsAbs(cfg.Database) {
		cfg.Database = filepath.Join(cfg.Root, cfg.Database)
	}

	return cfg, nil
}

// Discover finds the nearest config file at or above startDir and loads it.
func Discover(startDir string) (Config, error) {
	path, err := platform.FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

// EditorCommand resolves the editor to use: config value, then $EDITOR,
// then vi.
func (c Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if v := os.Getenv("EDITOR"); v != "" {
		return v
	}
	return "vi"
}
