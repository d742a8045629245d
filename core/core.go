// Package core has core logic for ingestion, scoring and aggregation.
package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/gitimpact/internal/alias"
	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/internal/outwriter"
	"github.com/huangsam/gitimpact/internal/render"
	"github.com/huangsam/gitimpact/schema"
)

// Output file names and chart titles.
const (
	singleProjectFilename = "git_stats"
	multiProjectFilename  = "git_impact_multi_project_report"
	singleProjectTitle    = "Git changes per Author"
	multiProjectTitle     = "Multi-Project Development Impact by Author"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, in io.Reader, out io.Writer) error

// ExecuteReport renders the charts for the document read from in and prints the leaderboard.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, in io.Reader, out io.Writer) error {
	summary, err := loadSummary(cfg, in, alias.NewFileLoader())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	renderer, err := render.New(cfg.Format)
	if err != nil {
		return err
	}
	path, err := writeChart(renderer, summary, cfg)
	if err != nil {
		return err
	}
	contract.LogInfo("Chart generated: %s", path)

	return outwriter.NewOutWriterTo(out).WriteLeaderboard(summary, cfg)
}

// ExecuteSummary prints the grouped summaries without rendering charts.
func ExecuteSummary(_ context.Context, cfg *contract.Config, in io.Reader, out io.Writer) error {
	start := time.Now()
	summary, err := loadSummary(cfg, in, alias.NewFileLoader())
	if err != nil {
		return err
	}
	return outwriter.NewOutWriterTo(out).WriteSummary(summary, cfg, time.Since(start))
}

// ExecuteScore prints one scored row per record, after alias resolution.
func ExecuteScore(_ context.Context, cfg *contract.Config, in io.Reader, out io.Writer) error {
	start := time.Now()
	ds, err := ReadInput(in)
	if err != nil {
		return err
	}
	if len(ds.Records) == 0 {
		return &schema.InputError{Kind: schema.ErrEmptyResult, Detail: "no records found"}
	}
	aliases, err := loadAliases(cfg, alias.NewFileLoader())
	if err != nil {
		return err
	}
	scored, _ := ResolveAliases(ScoreRecords(ds.Records), aliases)
	return outwriter.NewOutWriterTo(out).WriteScores(scored, cfg, time.Since(start))
}

// BuildSummary scores and aggregates a decoded dataset.
func BuildSummary(ds *schema.Dataset, opts Options) (*schema.Summary, error) {
	summary, err := Aggregate(ScoreRecords(ds.Records), ds.Mode, opts)
	if err != nil {
		return nil, err
	}
	summary.StartDate = ds.StartDate
	summary.EndDate = ds.EndDate
	if undated := countUndated(ds.Records); undated > 0 {
		contract.LogWarn("Records without a date are left out of the daily chart",
			fmt.Errorf("%d of %d records", undated, len(ds.Records)))
	}
	return summary, nil
}

func countUndated(records []schema.ContributionRecord) int {
	var n int
	for _, r := range records {
		if r.Date.IsZero() {
			n++
		}
	}
	return n
}

// OptionsFromConfig builds aggregator options from the validated configuration.
func OptionsFromConfig(cfg *contract.Config, aliases map[string]string) Options {
	return Options{
		Aliases:    aliases,
		Metric:     cfg.Metric,
		Threshold:  cfg.Threshold,
		OtherLabel: cfg.OtherLabel,
		Window:     cfg.Window,
	}
}

// ChartTitle returns the figure title for the summary.
func ChartTitle(summary *schema.Summary, projectName string) string {
	if summary.Mode == schema.MultiProjectMode {
		return fmt.Sprintf("%s (%s → %s)", multiProjectTitle, summary.StartDate, summary.EndDate)
	}
	if projectName != "" {
		return fmt.Sprintf("Project %s - %s", projectName, singleProjectTitle)
	}
	return singleProjectTitle
}

// OutputFilename returns the artifact file name for the summary and extension.
func OutputFilename(summary *schema.Summary, ext string) string {
	if summary.Mode == schema.MultiProjectMode {
		period := contract.SanitizeFilenamePart(summary.StartDate + "_" + summary.EndDate)
		return fmt.Sprintf("%s_%s.%s", multiProjectFilename, period, ext)
	}
	return fmt.Sprintf("%s.%s", singleProjectFilename, ext)
}

// loadSummary reads the input, loads aliases and aggregates. Input errors are
// detected here, before anything is rendered.
func loadSummary(cfg *contract.Config, in io.Reader, loader contract.AliasLoader) (*schema.Summary, error) {
	ds, err := ReadInput(in)
	if err != nil {
		return nil, err
	}
	aliases, err := loadAliases(cfg, loader)
	if err != nil {
		return nil, err
	}
	return BuildSummary(ds, OptionsFromConfig(cfg, aliases))
}

// loadAliases loads the alias file. A missing default file is not an error,
// but a missing file passed explicitly is.
func loadAliases(cfg *contract.Config, loader contract.AliasLoader) (map[string]string, error) {
	aliases, found, err := loader.Load(cfg.AliasesPath)
	if err != nil {
		return nil, err
	}
	if !found {
		if cfg.AliasesExplicit {
			return nil, fmt.Errorf("alias file %q does not exist", cfg.AliasesPath)
		}
		contract.LogInfo("No %s file found, no author grouping applied", cfg.AliasesPath)
		return nil, nil
	}
	contract.LogInfo("Loaded %d aliases from %s", len(aliases), cfg.AliasesPath)
	return aliases, nil
}

// writeChart renders the summary into the output directory and returns the file path.
func writeChart(renderer contract.ChartRenderer, summary *schema.Summary, cfg *contract.Config) (string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cfg.OutputDir, OutputFilename(summary, renderer.Extension()))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := renderer.Render(file, summary, ChartTitle(summary, cfg.ProjectName)); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close chart file: %w", err)
	}
	return path, nil
}
