// Package editor round-trips daybook entries through the user's editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

const fallbackEditor = "vi"

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Command returns the editor command line: $VISUAL, then $EDITOR, then vi.
// Values may carry arguments, as in "code --wait".
func Command() []string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(key)); len(fields) > 0 {
			return fields
		}
	}
	return []string{fallbackEditor}
}

// Edit opens path in the editor and waits for it to exit.
func Edit(path string) error {
	command := Command()
	cmd := exec.Command(command[0], append(command[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("editor %s exited with status %d editing %s", command[0], exitErr.ExitCode(), filepath.Base(path))
		}
		return fmt.Errorf("run editor %s: %w", command[0], err)
	}
	return nil
}
