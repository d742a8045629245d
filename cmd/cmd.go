// Package cmd defines the command-line interface for gitimpact.
package cmd

import (
	"github.com/huangsam/gitimpact/internal/contract"
	"github.com/huangsam/gitimpact/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("metric", string(schema.RelevanceMetric), "Aggregated metric: relevance or lines")
	rootCmd.PersistentFlags().Float64("threshold", contract.AutoThreshold, "Share of the total at or below which projects fold into Other (-1 = 2% for relevance, 5% for lines)")
	rootCmd.PersistentFlags().String("other-label", schema.OtherLabel, "Label of the bucket that collects small projects")
	rootCmd.PersistentFlags().Int("window", schema.MovingAverageWindow, "Number of days in the moving average trend line")
	rootCmd.PersistentFlags().String("aliases", "", "Path to a JSON or YAML author alias file (default aliases.json if present)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format for tables: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write table output to")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of rows to display (0 = all)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("format", string(schema.PNGChart), "Chart format: png or html")
	reportCmd.Flags().String("output-dir", contract.DefaultOutputDir, "Directory to write charts to")
	reportCmd.Flags().String("project-name", "", "Project name shown in the single-project title (default: git repository name)")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}
}
