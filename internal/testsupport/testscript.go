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

	"github.com/amonks/lists/tasklist"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	listsPath string
	buildErr  error
)

// BuildLists builds the lists binary once and returns its path.
func BuildLists(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "lists-bin-")
		if err != nil {
			buildErr = err
			return
		}

		listsPath = filepath.Join(binDir, "lists")
		cmd := exec.Command("go", "build", "-o", listsPath, "./cmd/lists")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build lists: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return listsPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("LISTS", BuildLists(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")
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

// CmdTaskIndex finds a task by text in `lists show --json` output and stores
// its line index in an env var.
func CmdTaskIndex(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskindex does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskindex FILE TEXT VAR")
	}

	var doc struct {
		Active    []tasklist.Task `json:"active"`
		Completed []tasklist.Task `json:"completed"`
	}
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	text := args[1]
	for _, task := range append(doc.Active, doc.Completed...) {
		if task.Text == text {
			ts.Setenv(args[2], fmt.Sprint(task.Index))
			return
		}
	}

	ts.Fatalf("task with text %q not found", text)
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
