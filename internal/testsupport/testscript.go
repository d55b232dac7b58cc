package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/mdtodo/todo"
)

var (
	buildOnce  sync.Once
	mdtodoPath string
	buildErr   error
)

// BuildMdtodo builds the mdtodo binary once and returns its path.
func BuildMdtodo(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "mdtodo-bin-")
		if err != nil {
			buildErr = err
			return
		}

		mdtodoPath = filepath.Join(binDir, "mdtodo")
		cmd := exec.Command("go", "build", "-o", mdtodoPath, "./cmd/mdtodo")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build mdtodo: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return mdtodoPath
}

// SetupScriptEnv configures common environment variables for testscript.
// The clock is pinned so scripts can assert exact dates.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("MDTODO", BuildMdtodo(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("MDTODO_USER", "tester")
	env.Setenv("MDTODO_NOW", "2025-11-03T09:00:00Z")
	env.Setenv("NO_COLOR", "1")
	env.Setenv("TZ", "UTC")
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

// CmdTodoRow finds a todo by description in `list --json` output and stores
// its 1-based row number in an env var.
func CmdTodoRow(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todorow does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todorow FILE DESCRIPTION VAR")
	}

	var items []todo.Record
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse todo list: %v", err)
	}

	description := args[1]
	for i, item := range items {
		if item.Description == description {
			ts.Setenv(args[2], strconv.Itoa(i+1))
			return
		}
	}

	ts.Fatalf("todo with description %q not found", description)
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
