package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Metric:      schema.RelevanceMetric,
		Threshold:   schema.DefaultRelevanceThreshold,
		OtherLabel:  schema.OtherLabel,
		Window:      schema.MovingAverageWindow,
		AliasesPath: filepath.Join(t.TempDir(), "aliases.json"),
		Format:      schema.PNGChart,
		OutputDir:   t.TempDir(),
		Output:      schema.TextOut,
		Precision:   2,
		Width:       120,
	}
}

func TestExecuteReportSingleProject(t *testing.T) {
	cfg := testConfig(t)
	cfg.ProjectName = "demo"

	var out bytes.Buffer
	err := ExecuteReport(context.Background(), cfg, strings.NewReader(legacyDoc), &out)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(cfg.OutputDir, "git_stats.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("\x89PNG")))
	assert.Contains(t, out.String(), "Alice")
	assert.NotContains(t, out.String(), schema.TotalAuthor)
}

func TestExecuteReportMultiProjectHTML(t *testing.T) {
	cfg := testConfig(t)
	cfg.Format = schema.HTMLChart

	var out bytes.Buffer
	err := ExecuteReport(context.Background(), cfg, strings.NewReader(multiDoc), &out)
	require.NoError(t, err)

	path := filepath.Join(cfg.OutputDir, "git_impact_multi_project_report_2024-01-01_2024-01-31.html")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Multi-Project Development Impact by Author")
}

func TestExecuteReportEmptyList(t *testing.T) {
	cfg := testConfig(t)

	err := ExecuteReport(context.Background(), cfg, strings.NewReader("[]"), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrEmptyResult))
	assert.False(t, schema.IsFatal(err))

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExecuteReportFatalInput(t *testing.T) {
	cfg := testConfig(t)

	err := ExecuteReport(context.Background(), cfg, strings.NewReader("plain text output"), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrInputMalformed))
	assert.True(t, schema.IsFatal(err))
}

func TestExecuteReportCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExecuteReport(ctx, testConfig(t), strings.NewReader(legacyDoc), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteSummaryWithAliases(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output = schema.JSONOut
	cfg.Metric = schema.LinesMetric
	require.NoError(t, os.WriteFile(cfg.AliasesPath, []byte(`{"Bob": "Alice"}`), 0o644))

	var out bytes.Buffer
	require.NoError(t, ExecuteSummary(context.Background(), cfg, strings.NewReader(legacyDoc), &out))

	var summary schema.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	require.Len(t, summary.AuthorTotals, 1)
	assert.Equal(t, "Alice", summary.AuthorTotals[0].Name)
	assert.Equal(t, 2010.0+70+10, summary.AuthorTotals[0].Value)
	assert.Equal(t, 1, summary.AliasesApplied)
}

func TestExecuteSummaryMissingExplicitAliases(t *testing.T) {
	cfg := testConfig(t)
	cfg.AliasesExplicit = true

	err := ExecuteSummary(context.Background(), cfg, strings.NewReader(legacyDoc), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestExecuteScoreCSV(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output = schema.CSVOut

	var out bytes.Buffer
	require.NoError(t, ExecuteScore(context.Background(), cfg, strings.NewReader(legacyDoc), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "Alice,,2024-01-01,2000,10,5,1,2010,12.38"))
}

func TestExecuteScoreEmpty(t *testing.T) {
	err := ExecuteScore(context.Background(), testConfig(t), strings.NewReader("[]"), &bytes.Buffer{})
	assert.ErrorIs(t, err, schema.ErrEmptyResult)
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		name     string
		summary  *schema.Summary
		ext      string
		expected string
	}{
		{
			name:     "single project",
			summary:  &schema.Summary{Mode: schema.SingleProjectMode},
			ext:      "png",
			expected: "git_stats.png",
		},
		{
			name:     "multi project",
			summary:  &schema.Summary{Mode: schema.MultiProjectMode, StartDate: "2024-01-01", EndDate: "2024-01-31"},
			ext:      "png",
			expected: "git_impact_multi_project_report_2024-01-01_2024-01-31.png",
		},
		{
			name:     "unsafe dates",
			summary:  &schema.Summary{Mode: schema.MultiProjectMode, StartDate: "6 months ago", EndDate: "now → later"},
			ext:      "html",
			expected: "git_impact_multi_project_report_6_months_ago_now__to__later.html",
		},
		{
			name:     "no metadata",
			summary:  &schema.Summary{Mode: schema.MultiProjectMode, StartDate: schema.NotAvailable, EndDate: schema.NotAvailable},
			ext:      "png",
			expected: "git_impact_multi_project_report_N_A_N_A.png",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OutputFilename(tt.summary, tt.ext))
		})
	}
}

func TestChartTitle(t *testing.T) {
	single := &schema.Summary{Mode: schema.SingleProjectMode}
	assert.Equal(t, "Git changes per Author", ChartTitle(single, ""))
	assert.Equal(t, "Project demo - Git changes per Author", ChartTitle(single, "demo"))

	multi := &schema.Summary{Mode: schema.MultiProjectMode, StartDate: "a", EndDate: "b"}
	assert.Equal(t, "Multi-Project Development Impact by Author (a → b)", ChartTitle(multi, "ignored"))
}

func TestBuildSummaryCarriesPeriod(t *testing.T) {
	ds, err := DecodeInput([]byte(multiDoc))
	require.NoError(t, err)

	summary, err := BuildSummary(ds, DefaultOptions(schema.RelevanceMetric))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", summary.StartDate)
	assert.Equal(t, "2024-01-31", summary.EndDate)
	assert.Equal(t, schema.MultiProjectMode, summary.Mode)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Threshold = 0.1
	aliases := map[string]string{"a": "b"}

	opts := OptionsFromConfig(cfg, aliases)
	assert.Equal(t, 0.1, opts.Threshold)
	assert.Equal(t, aliases, opts.Aliases)
	assert.Equal(t, cfg.Window, opts.Window)
}

func TestCountUndated(t *testing.T) {
	records := []schema.ContributionRecord{
		{Author: "Alice", Date: day(1)},
		{Author: "Bob"},
		{Author: "Carol"},
	}
	assert.Equal(t, 2, countUndated(records))
	assert.Equal(t, 0, countUndated(nil))
}
