package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
)

// authorsCmd renders per-author rollups for the active window.
var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Show per-author commit rollups for the active window.",
	Long: `Aggregate commit history across all configured repositories, group it
by author email and show per-author totals: commits, insertions, deletions
and last activity.

Examples:
  # Top authors today
  gitpulse authors

  # Top 25 authors over the last three months
  gitpulse authors --filter last3months --limit 25

  # One author's activity, exported as CSV
  gitpulse authors --author alice@example.com --output csv --output-file alice.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAuthors(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build author rollups", err)
		}
	},
}
