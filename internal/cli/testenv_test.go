package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mesh-intelligence/kanban/internal/paths"
)

// testEnv is an isolated config and data directory for running commands
// in-process.
type testEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string

	// Interactive makes delete believe stdin is a terminal.
	Interactive bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")
	t.Setenv(paths.EnvPreferencesFile, "")

	dir := t.TempDir()
	return &testEnv{
		t:         t,
		ConfigDir: filepath.Join(dir, "config"),
		DataDir:   filepath.Join(dir, "data"),
	}
}

// cmdResult holds the outcome of one invocation.
type cmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// run executes kanban with args, feeding stdin to the command.
func (e *testEnv) run(stdin string, args ...string) cmdResult {
	e.t.Helper()

	a := newApp()
	a.interactive = func(io.Reader) bool { return e.Interactive }
	root := a.rootCmd()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...))

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(&stderr, "Error:", err)
	}
	return cmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(err),
	}
}

// mustRun executes kanban and fails the test on a non-zero exit.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run("", args...)
	if res.ExitCode != 0 {
		e.t.Fatalf("kanban %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, res.ExitCode, res.Stdout, res.Stderr)
	}
	return res
}

// parseJSON decodes command output into T.
func parseJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", out, err)
	}
	return v
}
