package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/daybook/internal/env"
	"github.com/amonks/daybook/todo"
	"github.com/rogpeppe/go-internal/testscript"
)

// ScriptNow is the fixed clock used by CLI scripts.
const ScriptNow = "2026-06-15T10:00:00Z"

var (
	buildOnce   sync.Once
	daybookPath string
	buildErr    error
)

// BuildDaybook builds the daybook binary once and returns its path.
func BuildDaybook(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "daybook-bin-")
		if err != nil {
			buildErr = err
			return
		}

		daybookPath = filepath.Join(binDir, "daybook")
		cmd := exec.Command("go", "build", "-o", daybookPath, "./cmd/daybook")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build daybook: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return daybookPath
}

// SetupScriptEnv configures common environment variables for testscript.
// The clock is pinned to ScriptNow and output is uncolored.
func SetupScriptEnv(t testing.TB, e *testscript.Env) error {
	t.Helper()

	e.Setenv("DAYBOOK", BuildDaybook(t))

	homeDir := filepath.Join(e.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	e.Setenv("HOME", homeDir)
	e.Setenv(env.StateDirVar, filepath.Join(homeDir, ".local", "state", "daybook"))
	e.Setenv(env.NowVar, ScriptNow)
	e.Setenv("NO_COLOR", "1")
	e.Setenv("TZ", "UTC")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTodoID finds a todo by title in `daybook todo list --json` output
// and stores its ID in an env var.
func CmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todoid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todoid FILE TITLE VAR")
	}

	var items []todo.Todo
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse todo list: %v", err)
	}

	title := args[1]
	for _, item := range items {
		if item.Title == title {
			ts.Setenv(args[2], item.ID)
			return
		}
		for _, sub := range item.SubTodos {
			if sub.Title == title {
				ts.Setenv(args[2], sub.ID)
				return
			}
		}
	}

	ts.Fatalf("todo with title %q not found", title)
}

// CmdNoteID finds a note by text in `daybook note list --json` output
// and stores its ID in an env var.
func CmdNoteID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("noteid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: noteid FILE TEXT VAR")
	}

	var items []todo.Note
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &items); err != nil {
		ts.Fatalf("parse note list: %v", err)
	}

	for _, item := range items {
		if item.Text == args[1] {
			ts.Setenv(args[2], item.ID)
			return
		}
	}

	ts.Fatalf("note with text %q not found", args[1])
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
