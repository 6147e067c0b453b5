package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"passcheq/models"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	configPath string
	dataDir    string
	generated  atomic.Int32
	checked    atomic.Int32
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{}

	r := chi.NewRouter()
	r.Post("/generate-password", func(w http.ResponseWriter, r *http.Request) {
		n := e.generated.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"password":"pw%dXk9pq2mz","strength_score":%d}`, n, n%6)
	})
	r.Post("/check-password", func(w http.ResponseWriter, r *http.Request) {
		e.checked.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"score":2,"time_to_crack":"3 hours","has_been_breached":true,
			"feedback":{"warning":"This is a top-100 common password","suggestions":["Add another word or two"]}}`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	e.dataDir = filepath.Join(dir, "data")
	cfg := map[string]any{
		"environment": "test",
		"service": map[string]any{
			"generate_url": srv.URL + "/generate-password",
			"check_url":    srv.URL + "/check-password",
		},
		"storage": map[string]any{"type": "file", "path": e.dataDir},
		"logging": map[string]any{"log_level": "error"},
	}
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	e.configPath = filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(e.configPath, raw, 0o600))
	return e
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with stdin and returns stdout.
func (e *env) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := RootCmd.Execute()
	return out.String(), err
}

func (e *env) history(t *testing.T) []models.HistoryEntry {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(e.dataDir, "passwordHistory.json"))
	require.NoError(t, err)
	var entries []models.HistoryEntry
	require.NoError(t, json.Unmarshal(raw, &entries))
	return entries
}

func stubClipboard(t *testing.T, fail bool) *string {
	t.Helper()
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		if fail {
			return errors.New("no clipboard utilities available")
		}
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })
	return &copied
}

func TestGenerateCommand(t *testing.T) {
	e := newEnv(t)
	copied := stubClipboard(t, false)

	out, err := e.run(t, "", "generate", "-l", "16", "-d", "--copy")
	require.NoError(t, err)
	assert.Contains(t, out, "Password: pw1Xk9pq2mz")
	assert.Contains(t, out, "Strength: 1/5 (Weak)")
	assert.Contains(t, out, "Password copied to clipboard!")
	assert.Equal(t, "pw1Xk9pq2mz", *copied)

	entries := e.history(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "pw1Xk9pq2mz", entries[0].Password)
	assert.Equal(t, 1, entries[0].Strength)
}

func TestGenerateCommand_NoSaveAndClipboardFailure(t *testing.T) {
	e := newEnv(t)
	stubClipboard(t, true)

	out, err := e.run(t, "", "generate", "--no-save", "--copy")
	require.NoError(t, err, "clipboard failure is not fatal")
	assert.Contains(t, out, "Password: pw1Xk9pq2mz")
	assert.NotContains(t, out, "copied")
	assert.NoFileExists(t, filepath.Join(e.dataDir, "passwordHistory.json"))
}

func TestGenerateCommand_NoCharset(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "", "generate", "--lowercase=false")
	assert.ErrorContains(t, err, "at least one character type")
	assert.Zero(t, e.generated.Load())
}

func TestCheckCommand(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "check", "Sunshine1")
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 2/5 (Fair)")
	assert.Contains(t, out, "Time to crack: 3 hours")
	assert.Contains(t, out, "Breached: yes")
	assert.Contains(t, out, "Warning: This is a top-100 common password")
	assert.Contains(t, out, "  - Add another word or two")

	out, err = e.run(t, "", "checks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "S****1")
	assert.Contains(t, out, "1 check found")
	assert.NotContains(t, out, "Sunshine1")
}

func TestCheckCommand_ReadsStdin(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "hunter2\n", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 2/5")

	out, err = e.run(t, "", "checks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "h****2")
}

func TestCheckCommand_EmptyInput(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "   \n", "check")
	assert.ErrorContains(t, err, "enter a password")
	assert.Zero(t, e.checked.Load())
}

func TestHistoryList(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "history", "list")
	require.NoError(t, err)
	assert.Equal(t, "No password history yet.\n", out)

	for i := 0; i < 3; i++ {
		_, err := e.run(t, "", "generate")
		require.NoError(t, err)
	}

	out, err = e.run(t, "", "history", "list", "--sort", "strength", "--asc")
	require.NoError(t, err)
	assert.Contains(t, out, "3 passwords found")
	first := strings.Index(out, "pw1Xk9pq2mz")
	last := strings.Index(out, "pw3Xk9pq2mz")
	require.True(t, first > 0 && last > 0)
	assert.Less(t, first, last)

	out, err = e.run(t, "", "history", "list", "--sort", "strength")
	require.NoError(t, err)
	assert.Greater(t, strings.Index(out, "pw1Xk9pq2mz"), strings.Index(out, "pw3Xk9pq2mz"))

	out, err = e.run(t, "", "history", "list", "-s", "PW2")
	require.NoError(t, err)
	assert.Contains(t, out, "pw2Xk9pq2mz")
	assert.NotContains(t, out, "pw1Xk9pq2mz")
	assert.Contains(t, out, "1 password found")

	out, err = e.run(t, "", "history", "list", "-s", "nomatch")
	require.NoError(t, err)
	assert.Equal(t, "0 passwords found\n", out)

	_, err = e.run(t, "", "history", "list", "--sort", "length")
	assert.Error(t, err)
}

func TestHistoryDeleteAndCopy(t *testing.T) {
	e := newEnv(t)
	copied := stubClipboard(t, false)

	_, err := e.run(t, "", "generate")
	require.NoError(t, err)
	id := e.history(t)[0].ID

	out, err := e.run(t, "", "history", "copy", fmt.Sprint(id))
	require.NoError(t, err)
	assert.Contains(t, out, "Password copied to clipboard!")
	assert.Equal(t, "pw1Xk9pq2mz", *copied)

	_, err = e.run(t, "", "history", "copy", "42")
	assert.ErrorContains(t, err, "no entry with id 42")

	out, err = e.run(t, "", "history", "delete", fmt.Sprint(id))
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted entry")
	assert.Empty(t, e.history(t))

	out, err = e.run(t, "", "history", "delete", fmt.Sprint(id))
	require.NoError(t, err)
	assert.Contains(t, out, "No entry with id")

	_, err = e.run(t, "", "history", "delete", "abc")
	assert.ErrorContains(t, err, "invalid id")
}

func TestHistoryClear(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "", "generate")
	require.NoError(t, err)
	_, err = e.run(t, "", "check", "hunter2")
	require.NoError(t, err)

	out, err := e.run(t, "n\n", "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Len(t, e.history(t), 1)

	out, err = e.run(t, "y\n", "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared password history.")
	assert.NoFileExists(t, filepath.Join(e.dataDir, "passwordHistory.json"))

	out, err = e.run(t, "", "checks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1 check found", "clearing one catalog leaves the other")

	_, err = e.run(t, "", "checks", "clear", "--yes")
	require.NoError(t, err)
	out, err = e.run(t, "", "checks", "list")
	require.NoError(t, err)
	assert.Equal(t, "No check history yet.\n", out)
}

func TestHistoryStatsAndExport(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "", "history", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total entries: 0")

	for i := 0; i < 2; i++ {
		_, err := e.run(t, "", "generate")
		require.NoError(t, err)
	}

	out, err = e.run(t, "", "history", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total entries: 2")
	assert.Contains(t, out, "Average score: 1.50")

	_, err = e.run(t, "", "history", "export")
	assert.Error(t, err, "output is required")

	dest := filepath.Join(t.TempDir(), "out", "history.json")
	out, err = e.run(t, "", "history", "export", "-o", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 passwords")

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	var exported []models.HistoryEntry
	require.NoError(t, json.Unmarshal(raw, &exported))
	assert.Equal(t, e.history(t), exported)

	_, err = e.run(t, "", "history", "export", "-o", dest, "--public-key", filepath.Join(t.TempDir(), "missing.asc"))
	assert.Error(t, err)
}
