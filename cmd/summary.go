package cmd

import (
	"github.com/huangsam/gitimpact/core"
	"github.com/spf13/cobra"
)

// summaryCmd prints the grouped summaries without rendering charts.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the author and project totals behind the charts.",
	Long: `Aggregate the statistics read on stdin and print the same totals the charts show.

Prints the author leaderboard, the project distribution (multi-project input)
and the daily totals with their moving average.

Examples:
  # Human-readable tables
  git_stats_collector.sh json | gitimpact summary

  # Full summary as JSON for other tools
  git_multi_collector.sh | gitimpact summary --output json

  # Ranked totals as Parquet
  git_multi_collector.sh | gitimpact summary --output parquet --output-file impact.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		runExecutor(cmd, core.ExecuteSummary, "Cannot summarize statistics")
	},
}
