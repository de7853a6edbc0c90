package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the per-project configuration file the CLI looks for.
const ConfigFileName = ".astronote.toml"

// FindConfig walks from startDir towards the filesystem root looking for a
// config file. An iterative walk with explicit termination at the root, so
// deep trees cannot grow the stack.
// Returns the absolute path of the config file, or an error if none exists
// on the way up.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s found in %s or any parent directory", ConfigFileName, abs)
}
