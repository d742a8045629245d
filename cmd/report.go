package cmd

import (
	"github.com/huangsam/gitimpact/core"
	"github.com/spf13/cobra"
)

// reportCmd renders the impact charts.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render impact charts from statistics read on stdin.",
	Long: `Read the JSON statistics produced by the collector and render charts.

Single-project input (a list of authors with daily_data) produces git_stats.png:
- Stacked daily impact per author with a 7-day trend line
- Author leaderboard

Multi-project input ({metadata, data}) produces
git_impact_multi_project_report_<start>_<end>.png:
- Impact per project and author
- Work distribution per project, with small projects grouped into "Other"
- Author leaderboard across all projects

Examples:
  # Chart the last month of a single repository
  git_stats_collector.sh json | gitimpact report

  # Multi-project report as an interactive HTML page
  git_multi_collector.sh | gitimpact report --format html --output-dir reports

  # Chart raw line counts instead of impact scores
  git_stats_collector.sh json | gitimpact report --metric lines

  # Group identities with a custom alias file
  git_stats_collector.sh json | gitimpact report --aliases team.yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		runExecutor(cmd, core.ExecuteReport, "Cannot generate report")
	},
}
