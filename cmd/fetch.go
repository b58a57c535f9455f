package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
)

// fetchCmd refreshes remote refs for every tracked repository.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run 'git fetch' across the tracked repositories.",
	Long: `Run 'git fetch' in every tracked repository concurrently. Repositories
that are missing or not valid git checkouts are reported and skipped, a
fetch failure in one repository never aborts the others.

Example:
  gitpulse fetch --workers 8`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFetch(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot fetch repositories", err)
		}
	},
}

// syncCmd persists the full commit history of every tracked repository.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Persist commit history for the tracked repositories.",
	Long: `Walk every branch of every tracked repository and upsert its commits
into the configured store backend. Sync is idempotent, rerunning it only
adds commits that are new since the last run.

Example:
  gitpulse sync --db-backend sqlite`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSync(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot sync repositories", err)
		}
	},
}
