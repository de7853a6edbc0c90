package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aretw0/astronote"
	"github.com/aretw0/astronote/internal/config"
	"github.com/aretw0/astronote/internal/platform"
	"github.com/aretw0/astronote/pkg/core"
)

var (
	verbose    bool
	configPath string
)

// Styles for user-facing output.
var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "astronote",
	Short: "Spaced-repetition review scheduling for your plain files",
	Long: `Astronote tracks files under a root directory and tells you when to review
each of them, using the SM-2 spaced-repetition algorithm.

Configuration lives in a .astronote.toml file, discovered by walking up
from the current directory.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to .astronote.toml (default: discovered upwards from the working directory)")
}

// openStore loads the configuration and opens the configured backend.
// Callers must Close the returned store.
func openStore(ctx context.Context) (config.Config, core.NoteStore, error) {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return config.Config{}, nil, fmt.Errorf("failed to get working directory: %w", wdErr)
		}
		cfg, err = config.Discover(wd)
	}
	if err != nil {
		return config.Config{}, nil, err
	}

	store, err := astronote.Open(ctx, cfg.Backend, cfg.Database, astronote.WithLogger(slog.Default()))
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, store, nil
}

func newService(store core.NoteStore) *core.Service {
	return core.NewService(store, core.WithLogger(slog.Default()))
}

// resolveIdentity maps a command-line argument to a tracked identity.
// Existing files are confined against the root; if the file is already
// gone, the argument is taken as a literal identity so stale entries
// can still be addressed.
func resolveIdentity(root, arg string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	identity, err := platform.Confine(wd, arg, root)
	if errors.Is(err, core.ErrNotFound) {
		return path.Clean(filepath.ToSlash(arg)), nil
	}
	return identity, err
}
