package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
)

// branchesCmd renders branch activity from the store.
var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "Show per-branch activity from the store.",
	Long: `Show branch activity recorded by 'gitpulse sync'. Without flags it lists
every branch with its commit count, author count and last activity. With
--repo and --branch it lists the contributors to that one branch.

Examples:
  # All branches across all synced repositories
  gitpulse branches

  # Contributors to one branch
  gitpulse branches --repo backend --branch develop`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		repository := viper.GetString("repo")
		if err := core.ExecuteBranches(rootCtx, cfg, repository); err != nil {
			contract.LogFatal("Cannot build branch view", err)
		}
	},
}

// teamCmd renders the developer activity view.
var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show each developer's last-known activity from the store.",
	Long: `Show the store-backed team view: every developer's latest commit, the
repository and branch it landed on, and their commit counts for today and
the current week. Developers are listed most recently active first.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTeamStatus(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build team view", err)
		}
	},
}
