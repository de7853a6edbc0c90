package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/astronote/internal/platform"
)

var addCmd = &cobra.Command{
	Use:   "add [path|glob]...",
	Short: "Start tracking files for review",
	Long: `Add registers files under the configured root for spaced-repetition review.
Arguments may be plain paths or doublestar globs ('notes/**/*.md'); anything
that is not a regular file is skipped. Already-tracked files are left alone.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, store, err := openStore(ctx)
		if err != nil {
			fatal("Failed to open store", err)
		}
		defer store.Close()

		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get working directory", err)
		}

		paths, err := expandArgs(args)
		if err != nil {
			fatal("Failed to expand arguments", err)
		}

		var identities []string
		for _, path := range paths {
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			identity, err := platform.Confine(wd, path, cfg.Root)
			if err != nil {
				fatal(fmt.Sprintf("Cannot track %s", path), err)
			}
			identities = append(identities, identity)
		}

		svc := newService(store)
		added, err := svc.Track(ctx, identities)
		if err != nil {
			fatal("Failed to track notes", err)
		}

		fmt.Println(okStyle.Render(fmt.Sprintf("Added %d notes", added)))
	},
}

// expandArgs turns each argument into concrete paths, treating arguments
// containing glob metacharacters as doublestar patterns.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !hasGlobMeta(arg) {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func hasGlobMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(addCmd)
}
