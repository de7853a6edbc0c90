// Package platform holds filesystem plumbing shared by the CLI: the gate
// turning user-supplied paths into store identities, and config discovery.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/astronote/pkg/core"
)

// Confine canonicalizes path, verifies it exists and lies under root, and
// returns the root-relative identity (slash-separated, regardless of OS).
//
// This is the sole gate between filesystem paths and store identities; the
// stores themselves treat identities as opaque strings. The working
// directory is a parameter, not ambient process state, so callers and tests
// control resolution of relative paths.
func Confine(wd, path, root string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(wd, abs)
	}

	// Resolve symlinks on both sides so the containment check compares
	// canonical forms. EvalSymlinks also verifies existence.
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", core.ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to canonicalize %s: %w", path, err)
	}
	canonicalRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize root %s: %w", root, err)
	}

	rel, err := filepath.Rel(canonicalRoot, canonical)
	if err != nil {
		return "", fmt.Errorf("%w: %s is not under %s", core.ErrOutsideRoot, path, root)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is not under %s", core.ErrOutsideRoot, path, root)
	}
	return filepath.ToSlash(rel), nil
}

// Resolve maps a store identity back to the absolute file path under root.
// The inverse of Confine for displaying and opening tracked files.
func Resolve(root, identity string) string {
	return filepath.Join(root, filepath.FromSlash(identity))
}
