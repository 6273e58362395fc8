package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lumen/internal/ui/theme"
)

// sandbox isolates config lookup and returns a data directory for the
// file store.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("LUMEN_LLM_PROVIDER", "mock")
	t.Setenv("LUMEN_REPORTS_DIR", filepath.Join(dir, "reports"))
	return filepath.Join(dir, "store")
}

func execute(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--store", "file", "--data-dir", dataDir}, args...))
	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	dir := sandbox(t)
	out, err := execute(t, dir, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "lumen "), out)
	assert.Contains(t, out, runtime.Version())
}

func TestQueueCommands(t *testing.T) {
	dir := sandbox(t)

	out, err := execute(t, dir, "", "queue", "add", "Black", "holes")
	require.NoError(t, err)
	assert.Contains(t, out, `Queued "Black holes".`)

	out, err = execute(t, dir, "", "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Black holes")

	_, err = execute(t, dir, "", "queue", "add", "black holes")
	assert.Error(t, err, "a pending duplicate should be rejected")
}

func TestEmptyLists(t *testing.T) {
	dir := sandbox(t)

	out, err := execute(t, dir, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No lessons yet")

	out, err = execute(t, dir, "", "knowledge")
	require.NoError(t, err)
	assert.Contains(t, out, "knowledge map is empty")

	out, err = execute(t, dir, "", "history", "clear", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "History, knowledge map and saved course cleared.")
}

func TestReset(t *testing.T) {
	dir := sandbox(t)
	_, err := execute(t, dir, "", "queue", "add", "Volcanoes")
	require.NoError(t, err)

	_, err = execute(t, dir, "n\n", "reset")
	require.NoError(t, err)
	out, err := execute(t, dir, "", "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Volcanoes", "declined reset must keep data")

	out, err = execute(t, dir, "", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "All learner data erased.")
	out, err = execute(t, dir, "", "queue", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "The learning queue is empty.")
}

func TestMenu_ReportScanQueuesTopic(t *testing.T) {
	dir := sandbox(t)
	reports := os.Getenv("LUMEN_REPORTS_DIR")
	require.NoError(t, os.MkdirAll(reports, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(reports, "2026-10-01-scan.md"),
		[]byte("# Weekly Scan\n- Quantum dots are back"), 0o600))

	out, err := execute(t, dir, strings.Join([]string{
		"5", "Quantum dots", // report scan, queue a topic
		"2", "3", // queue menu, back
		"6",
	}, "\n")+"\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Weekly Scan")
	assert.Contains(t, out, "• Quantum dots are back")
	assert.Contains(t, out, `Queued "Quantum dots".`)
	assert.Contains(t, out, "Start: Quantum dots")
}

func TestMenu_EndOfInputExits(t *testing.T) {
	dir := sandbox(t)
	out, err := execute(t, dir, "")
	require.NoError(t, err)
	for _, item := range menuOptions {
		assert.Contains(t, out, item)
	}
}

func TestCurriculum_UnreadableFileOffersRetry(t *testing.T) {
	dir := sandbox(t)
	out, err := execute(t, dir, "\n", "curriculum", "missing.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Could not read missing.txt")
	assert.Contains(t, out, "Enter a path to try again")
}

func TestCurriculum_ResumeWithoutSavedCourse(t *testing.T) {
	dir := sandbox(t)
	out, err := execute(t, dir, "", "curriculum", "--resume")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved course to resume.")
}

func TestThemeRemembered(t *testing.T) {
	dir := sandbox(t)
	flag := rootCmd.PersistentFlags().Lookup("theme")
	t.Cleanup(func() {
		_ = flag.Value.Set("")
		flag.Changed = false
		theme.Apply(theme.Dark)
	})

	_, err := execute(t, dir, "", "--theme", "light", "queue", "list")
	require.NoError(t, err)
	assert.Equal(t, theme.Light, theme.Current())

	_ = flag.Value.Set("")
	flag.Changed = false
	theme.Apply(theme.Dark)

	_, err = execute(t, dir, "", "queue", "list")
	require.NoError(t, err)
	assert.Equal(t, theme.Light, theme.Current(), "stored choice should win over the config default")

	_, err = execute(t, dir, "", "--theme", "neon", "queue", "list")
	assert.Error(t, err)
}
