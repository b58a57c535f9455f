package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
)

// reportCmd summarizes stored commit history.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the stored commit history.",
	Long: `Summarize commit history that was persisted with 'gitpulse sync'.
The report covers overall totals, the most active authors and a per-day
commit breakdown over the requested number of days.

Examples:
  # Report over the last 30 days (default)
  gitpulse report

  # Report over the last quarter as JSON
  gitpulse report --days 90 --output json

  # Export the raw stored commits
  gitpulse report --output parquet --output-file commits.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		days := viper.GetInt("days")
		if err := core.ExecuteReport(rootCtx, cfg, days); err != nil {
			contract.LogFatal("Cannot build report", err)
		}
	},
}
