package cmd

import (
	"github.com/huangsam/gitimpact/core"
	"github.com/spf13/cobra"
)

// scoreCmd prints the impact score of every input record.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the impact score of every record read on stdin.",
	Long: `Score each (author, day, project) record with ln(1+min(added,1000)) * ln(1+files).

Records without commits or files score zero. Author aliases are applied.

Examples:
  git_stats_collector.sh json | gitimpact score --limit 20
  git_multi_collector.sh | gitimpact score --output csv --output-file scores.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		runExecutor(cmd, core.ExecuteScore, "Cannot score statistics")
	},
}
