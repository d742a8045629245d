package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/gitimpact/core"
	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "gitimpact",
	Short:              "Chart developer impact from git contribution statistics.",
	Long:               `Gitimpact reads per-author git statistics from stdin, scores each day of work and charts who moved each project forward.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".gitimpact") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("GITIMPACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("metric", schema.RelevanceMetric)
	viper.SetDefault("threshold", contract.AutoThreshold)
	viper.SetDefault("other-label", schema.OtherLabel)
	viper.SetDefault("window", schema.MovingAverageWindow)
	viper.SetDefault("format", schema.PNGChart)
	viper.SetDefault("output-dir", contract.DefaultOutputDir)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	client := contract.NewLocalGitClient()
	if err := contract.ProcessAndValidate(ctx, cfg, client, input); err != nil {
		return err
	}

	color.NoColor = color.NoColor || !cfg.UseColors
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// runExecutor runs one of the core executors against the command's stdin and stdout.
// A "no data" outcome is reported and is not a failure.
func runExecutor(cmd *cobra.Command, run core.ExecutorFunc, failMsg string) {
	err := run(rootCtx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	if err == nil {
		return
	}
	if !schema.IsFatal(err) {
		contract.LogInfo("%v", err)
		return
	}
	reportInputError(err)
	contract.LogFatal(failMsg, err)
}

// reportInputError prints the hint and input excerpt that come with input errors.
func reportInputError(err error) {
	var inputErr *schema.InputError
	if !errors.As(err, &inputErr) {
		return
	}
	if inputErr.Hint != "" {
		_, _ = fmt.Fprintf(os.Stderr, "💡 %s\n", inputErr.Hint)
	}
	if inputErr.Excerpt != "" {
		_, _ = fmt.Fprintf(os.Stderr, "   Input starts with: %s\n", contract.MutedColor.Sprint(inputErr.Excerpt))
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
