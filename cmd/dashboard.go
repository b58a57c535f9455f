package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
)

// dashboardCmd renders the full activity dashboard.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the commit-activity dashboard for the active window.",
	Long: `Aggregate commit history across all configured repositories and render
the full dashboard: summary counters, productivity metrics, the daily
timeline, top authors and team status.

Repositories that cannot be read are reported as warnings; the dashboard
still renders from the repositories that could.

Examples:
  # Today's activity (default window)
  gitpulse dashboard

  # Last month across all repositories
  gitpulse dashboard --filter lastmonth

  # A fixed range, exported as JSON
  gitpulse dashboard --filter custom --start 2024-01-01 --end 2024-03-31 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build dashboard", err)
		}
	},
}
