package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/doit/internal/session"
	"github.com/Makepad-fr/doit/internal/tui"
)

const groceries = `events:
  - op: add-list
    name: Groceries
  - op: add-todo
    list: Groceries
    title: Milk
  - op: add-todo
    list: Groceries
    title: Eggs
    note: 2 dozen
  - op: toggle-todo
    list: Groceries
    todo: Milk
`

type harness struct {
	r              *Runner
	stdout, stderr bytes.Buffer
	tuiOpts        *tui.Options
	dir            string
}

func newHarness(t *testing.T, stdin string) *harness {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{
		"DOIT_CONFIG", "DOIT_THEME", "DOIT_IDS", "DOIT_LOG_FILE", "DOIT_LOG_LEVEL",
		"DOIT_EXPORT_DIR", "DOIT_EXPORT_FORMAT", "DOIT_SPLASH",
	} {
		t.Setenv(k, "")
	}

	h := &harness{dir: dir}
	h.r = &Runner{
		Stdin:  strings.NewReader(stdin),
		Stdout: &h.stdout,
		Stderr: &h.stderr,
		Now:    func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) },
		RunTUI: func(_ *session.Session, opt tui.Options) error {
			h.tuiOpts = &opt
			return nil
		},
	}
	return h
}

func (h *harness) run(args ...string) int {
	return h.r.Run(append([]string{"-theme", "mono"}, args...))
}

func TestReplayFile(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "groceries.yaml"), []byte(groceries), 0o644))

	code := h.run("-ids", "counter", "replay", "-export", "out.json", "groceries.yaml")
	require.Equal(t, 0, code, h.stderr.String())

	out := h.stdout.String()
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "[x] Milk")
	assert.Contains(t, out, "[ ] Eggs  2 dozen")
	assert.Contains(t, out, "4 events: 4 applied, 0 ignored")
	assert.Contains(t, out, "exported to out.json")

	data, err := os.ReadFile(filepath.Join(h.dir, "out.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Milk"`)
	assert.Contains(t, string(data), `"id": "1"`)
}

func TestReplayStdin(t *testing.T) {
	script := groceries + `  - op: delete-todo
    list: Shopping
    todo: Milk
`
	h := newHarness(t, script)

	code := h.run("replay", "-group", "-")
	require.Equal(t, 0, code, h.stderr.String())
	assert.Contains(t, h.stdout.String(), "5 events: 4 applied, 1 ignored")
	assert.Contains(t, h.stdout.String(), "Pending")
}

func TestReplayErrors(t *testing.T) {
	t.Run("invalid script", func(t *testing.T) {
		h := newHarness(t, "events:\n  - op: add-list\n")
		assert.Equal(t, 1, h.run("replay", "-"))
		assert.Contains(t, h.stderr.String(), "invalid script")
		assert.Contains(t, h.stderr.String(), "events[0]")
	})

	t.Run("missing file", func(t *testing.T) {
		h := newHarness(t, "")
		assert.Equal(t, 1, h.run("replay", "nope.yaml"))
		assert.Contains(t, h.stderr.String(), "open script")
	})

	t.Run("export into a missing directory", func(t *testing.T) {
		h := newHarness(t, groceries)
		assert.Equal(t, 1, h.run("replay", "-export", filepath.Join("missing", "dir", "out.json"), "-"))
		assert.Contains(t, h.stderr.String(), "export:")
	})
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown subcommand", []string{"frobnicate"}},
		{"unknown flag", []string{"-nope"}},
		{"bad theme", []string{"-theme", "pink"}},
		{"bad ids", []string{"-ids", "random"}},
		{"replay without script", []string{"replay"}},
		{"replay with two scripts", []string{"replay", "a.yaml", "b.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			assert.Equal(t, 2, h.r.Run(tt.args))
			assert.NotEmpty(t, h.stderr.String())
			assert.Nil(t, h.tuiOpts)
		})
	}
}

func TestDefaultSubcommandIsTUI(t *testing.T) {
	h := newHarness(t, "")
	require.Equal(t, 0, h.run("-export-format", "yaml", "-export-dir", "exports"))
	require.NotNil(t, h.tuiOpts)
	assert.True(t, h.tuiOpts.Splash)
	assert.Equal(t, "yaml", h.tuiOpts.ExportFormat)
	assert.Equal(t, "exports", h.tuiOpts.ExportDir)

	h = newHarness(t, "")
	require.Equal(t, 0, h.run("-splash=false", "tui"))
	assert.False(t, h.tuiOpts.Splash)
}

func TestTUIError(t *testing.T) {
	h := newHarness(t, "")
	h.r.RunTUI = func(*session.Session, tui.Options) error { return errors.New("no tty") }
	assert.Equal(t, 1, h.run("tui"))
	assert.Contains(t, h.stderr.String(), "tui: no tty")
}

func TestConfigSubcommand(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "doit.toml"), []byte("id_strategy = \"counter\"\n"), 0o644))

	require.Equal(t, 0, h.run("config"))
	out := h.stdout.String()
	assert.Contains(t, out, `theme = "mono"`)
	assert.Contains(t, out, `id_strategy = "counter"`)
	assert.Contains(t, out, "# from doit.toml")
}

func TestLogFile(t *testing.T) {
	h := newHarness(t, groceries)
	logPath := filepath.Join(h.dir, "logs", "doit.log")
	require.Equal(t, 0, h.run("-log-file", logPath, "-log-level", "debug", "replay", "-"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"start"`)
	assert.Contains(t, string(data), `"op":"add-list"`)
}

func TestHelp(t *testing.T) {
	h := newHarness(t, "")
	assert.Equal(t, 0, h.run("help"))
	assert.Contains(t, h.stdout.String(), "Subcommands:")
	assert.Contains(t, h.stdout.String(), "replay")
}
