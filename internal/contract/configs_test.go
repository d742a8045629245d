package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/gitimpact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// validInput returns the raw input produced by the default flag values.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Metric:    string(schema.RelevanceMetric),
		Threshold: AutoThreshold,
		Window:    schema.MovingAverageWindow,
		Format:    string(schema.PNGChart),
		Output:    string(schema.TextOut),
		Precision: DefaultPrecision,
		Color:     "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError bool
		check       func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.RelevanceMetric, cfg.Metric)
				assert.Equal(t, schema.DefaultRelevanceThreshold, cfg.Threshold)
				assert.Equal(t, schema.OtherLabel, cfg.OtherLabel)
				assert.Equal(t, DefaultAliasesFile, cfg.AliasesPath)
				assert.False(t, cfg.AliasesExplicit)
				assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
				assert.Equal(t, schema.PNGChart, cfg.Format)
				assert.True(t, cfg.UseColors)
			},
		},
		{
			name:   "lines metric uses its own default threshold",
			modify: func(in *ConfigRawInput) { in.Metric = "LINES" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.LinesMetric, cfg.Metric)
				assert.Equal(t, schema.DefaultLinesThreshold, cfg.Threshold)
			},
		},
		{
			name:   "explicit threshold",
			modify: func(in *ConfigRawInput) { in.Threshold = 0.1 },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 0.1, cfg.Threshold)
			},
		},
		{
			name:   "zero threshold",
			modify: func(in *ConfigRawInput) { in.Threshold = 0 },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 0.0, cfg.Threshold)
			},
		},
		{
			name: "explicit aliases and other label",
			modify: func(in *ConfigRawInput) {
				in.Aliases = " team.yaml "
				in.OtherLabel = "Altro"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "team.yaml", cfg.AliasesPath)
				assert.True(t, cfg.AliasesExplicit)
				assert.Equal(t, "Altro", cfg.OtherLabel)
			},
		},
		{
			name: "parquet with output file",
			modify: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "out.parquet"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.ParquetOut, cfg.Output)
				assert.Equal(t, "out.parquet", cfg.OutputFile)
			},
		},
		{
			name:   "html charts",
			modify: func(in *ConfigRawInput) { in.Format = "HTML" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.HTMLChart, cfg.Format)
			},
		},
		{name: "invalid metric", modify: func(in *ConfigRawInput) { in.Metric = "commits" }, expectError: true},
		{name: "threshold too large", modify: func(in *ConfigRawInput) { in.Threshold = 1 }, expectError: true},
		{name: "negative threshold", modify: func(in *ConfigRawInput) { in.Threshold = -0.5 }, expectError: true},
		{name: "zero window", modify: func(in *ConfigRawInput) { in.Window = 0 }, expectError: true},
		{name: "invalid format", modify: func(in *ConfigRawInput) { in.Format = "svg" }, expectError: true},
		{name: "invalid output", modify: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", modify: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "invalid color", modify: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "precision too high", modify: func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 }, expectError: true},
		{name: "limit too high", modify: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: true},
		{name: "negative width", modify: func(in *ConfigRawInput) { in.Width = -1 }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.ProjectName = "fixed"
			if tt.modify != nil {
				tt.modify(input)
			}
			cfg := &Config{}
			err := ProcessAndValidate(context.Background(), cfg, nil, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestResolveProjectName(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit name skips git", func(t *testing.T) {
		client := new(MockGitClient)
		input := validInput()
		input.ProjectName = " demo "
		cfg := &Config{}

		require.NoError(t, ProcessAndValidate(ctx, cfg, client, input))
		assert.Equal(t, "demo", cfg.ProjectName)
		client.AssertNotCalled(t, "GetRepoRoot", mock.Anything, mock.Anything)
	})

	t.Run("falls back to repository name", func(t *testing.T) {
		client := new(MockGitClient)
		client.On("GetRepoRoot", ctx, ".").Return("/home/dev/gitimpact", nil)
		cfg := &Config{}

		require.NoError(t, ProcessAndValidate(ctx, cfg, client, validInput()))
		assert.Equal(t, "gitimpact", cfg.ProjectName)
		client.AssertExpectations(t)
	})

	t.Run("outside a repository", func(t *testing.T) {
		client := new(MockGitClient)
		client.On("GetRepoRoot", ctx, ".").Return("", errors.New("not a git repository"))
		cfg := &Config{}

		require.NoError(t, ProcessAndValidate(ctx, cfg, client, validInput()))
		assert.Empty(t, cfg.ProjectName)
	})
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Metric: schema.LinesMetric, Threshold: 0.3}
	clone := cfg.Clone()
	clone.Threshold = 0.5

	assert.Equal(t, 0.3, cfg.Threshold)
	assert.Equal(t, schema.LinesMetric, clone.Metric)
}
