// Package editor opens tracked files in the user's editor during review.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Open runs the editor command on the given path, wired to the terminal,
// and blocks until it exits. The command may carry arguments ("code -w").
func Open(command, path string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return errors.New("editor command is empty")
	}

	parts := strings.Fields(command)
	name := parts[0]
	args := append(parts[1:], path)

	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q failed: %w", command, err)
	}
	return nil
}
