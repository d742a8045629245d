package contract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/huangsam/gitimpact/schema"
)

// Default values for configuration.
const (
	DefaultAliasesFile = "aliases.json"
	DefaultOutputDir   = "."
	DefaultPrecision   = 2
	MaxPrecision       = 6
	DefaultResultLimit = 0 // 0 means no limit
	MaxResultLimit     = 1000

	// AutoThreshold selects the metric's default "Other" threshold.
	AutoThreshold = -1.0
)

// Config holds the runtime configuration for a run.
// This struct is the "final, validated" config.
type Config struct {
	Metric     schema.MetricMode
	Threshold  float64 // share of the grand total at or below which projects fold into OtherLabel
	OtherLabel string
	Window     int

	AliasesPath     string // file to load author aliases from
	AliasesExplicit bool   // the path was given by the user, so it must exist

	Format      schema.ChartFormat
	OutputDir   string
	ProjectName string // shown in single-project chart titles

	Output      schema.OutputMode
	OutputFile  string
	Precision   int
	ResultLimit int
	Width       int // Terminal width override (0 = auto-detect)

	UseColors bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
type ConfigRawInput struct {
	Metric      string  `mapstructure:"metric"`
	Threshold   float64 `mapstructure:"threshold"`
	OtherLabel  string  `mapstructure:"other-label"`
	Window      int     `mapstructure:"window"`
	Aliases     string  `mapstructure:"aliases"`
	Format      string  `mapstructure:"format"`
	OutputDir   string  `mapstructure:"output-dir"`
	ProjectName string  `mapstructure:"project-name"`
	Output      string  `mapstructure:"output"`
	OutputFile  string  `mapstructure:"output-file"`
	Precision   int     `mapstructure:"precision"`
	Limit       int     `mapstructure:"limit"`
	Width       int     `mapstructure:"width"`
	Color       string  `mapstructure:"color"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAggregation(cfg, input); err != nil {
		return err
	}
	if err := processOutputs(cfg, input); err != nil {
		return err
	}
	resolveProjectName(ctx, cfg, client, input)
	return nil
}

// validateSimpleInputs processes and validates the presentation fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Width = input.Width
	cfg.OutputFile = strings.TrimSpace(input.OutputFile)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// processAggregation validates metric, threshold, window and aliases.
func processAggregation(cfg *Config, input *ConfigRawInput) error {
	cfg.Metric = schema.MetricMode(strings.ToLower(strings.TrimSpace(input.Metric)))
	if cfg.Metric == "" {
		cfg.Metric = schema.RelevanceMetric
	}
	if _, ok := schema.ValidMetricModes[cfg.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be relevance or lines", input.Metric)
	}

	switch {
	case input.Threshold == AutoThreshold:
		cfg.Threshold = schema.DefaultThreshold(cfg.Metric)
	case input.Threshold < 0 || input.Threshold >= 1:
		return fmt.Errorf("threshold must be a share in [0, 1) or %v for the metric default (received %v)", AutoThreshold, input.Threshold)
	default:
		cfg.Threshold = input.Threshold
	}

	cfg.OtherLabel = strings.TrimSpace(input.OtherLabel)
	if cfg.OtherLabel == "" {
		cfg.OtherLabel = schema.OtherLabel
	}

	if input.Window < 1 {
		return fmt.Errorf("window must be at least 1 (received %d)", input.Window)
	}
	cfg.Window = input.Window

	cfg.AliasesPath = strings.TrimSpace(input.Aliases)
	cfg.AliasesExplicit = cfg.AliasesPath != ""
	if cfg.AliasesPath == "" {
		cfg.AliasesPath = DefaultAliasesFile
	}
	return nil
}

// processOutputs validates chart and summary output settings.
func processOutputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Format = schema.ChartFormat(strings.ToLower(strings.TrimSpace(input.Format)))
	if cfg.Format == "" {
		cfg.Format = schema.PNGChart
	}
	if _, ok := schema.ValidChartFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid chart format '%s'. must be png or html", input.Format)
	}

	cfg.OutputDir = strings.TrimSpace(input.OutputDir)
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	cfg.Output = schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required when using parquet output")
	}
	return nil
}

// resolveProjectName uses the explicit project name, or falls back to the
// name of the enclosing Git repository. Failing to find one is not an error.
func resolveProjectName(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) {
	cfg.ProjectName = strings.TrimSpace(input.ProjectName)
	if cfg.ProjectName != "" || client == nil {
		return
	}
	root, err := client.GetRepoRoot(ctx, ".")
	if err != nil || root == "" {
		return
	}
	cfg.ProjectName = filepath.Base(root)
}
