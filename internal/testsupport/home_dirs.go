package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/daybook/internal/env"
)

// EnsureHomeDirs creates the default config and state directories under homeDir.
func EnsureHomeDirs(homeDir string) error {
	if err := os.MkdirAll(filepath.Join(homeDir, ".local", "state", "daybook"), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(homeDir, ".config", "daybook"), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return nil
}

// SetupTestHome creates a temp home directory, sets HOME, and clears the
// daybook overrides so the defaults under the new home are used.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := EnsureHomeDirs(homeDir); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv(env.ConfigVar, "")
	t.Setenv(env.StateDirVar, "")
	t.Setenv(env.NowVar, "")
	return homeDir
}
