package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "gitimpact CLI")
	assert.Contains(t, buf.String(), "Version: dev")
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"report", "summary", "score", "version"} {
		assert.True(t, names[name], "missing %s command", name)
	}
}

func TestSummaryCommandJSON(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(`[{"author":"A","daily_data":[{"date":"2024-01-01","added":2000,"files":5,"commits":1}]}]`))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"summary", "--output", "json", "--color", "no", "--project-name", "demo",
		"--aliases", "", "--output-file", "",
	})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	t.Chdir(dir)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"name": "A"`)
	assert.Contains(t, out.String(), `"grand_total": 12.37`)
}

func TestReportCommandWritesChart(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(`[{"author":"A","daily_data":[{"date":"2024-01-01","added":20,"files":2,"commits":1}]}]`))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"report", "--output-dir", dir, "--format", "html", "--color", "no", "--project-name", "demo",
		"--output", "text",
	})
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	t.Chdir(t.TempDir())

	require.NoError(t, rootCmd.Execute())
	_, err := os.Stat(filepath.Join(dir, "git_stats.html"))
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "A")
}
