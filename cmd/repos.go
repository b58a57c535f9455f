package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
)

// reposCmd manages the tracked repository set.
var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Manage the tracked repository set.",
	Long: `Manage the repositories gitpulse works on. Repositories come from two
places: the 'repositories' list in .gitpulse.yaml and the set tracked in
the store via 'repos add'.

Subcommands:
  add     - Track a local repository
  remove  - Untrack a repository (removes its stored commits)
  list    - List the active repository set
  scan    - Walk a directory looking for git repositories`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// reposAddCmd tracks one local repository.
var reposAddCmd = &cobra.Command{
	Use:     "add <path>",
	Short:   "Track a local git repository.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteReposAdd(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot add repository", err)
		}
	},
}

// reposRemoveCmd untracks one repository.
var reposRemoveCmd = &cobra.Command{
	Use:     "remove <name-or-path>",
	Short:   "Untrack a repository and delete its stored commits.",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteReposRemove(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot remove repository", err)
		}
	},
}

// reposListCmd lists the active repository set.
var reposListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the active repository set.",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReposList(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list repositories", err)
		}
	},
}

// reposScanCmd walks a directory looking for git repositories.
var reposScanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Walk a directory looking for git repositories.",
	Long: `Walk a directory tree and report which subdirectories are git
repositories, descending at most --scan-depth levels. Defaults to the
current directory.

Example:
  gitpulse repos scan ~/src --scan-depth 3`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		if err := core.ExecuteReposScan(rootCtx, cfg, root); err != nil {
			contract.LogFatal("Cannot scan directory", err)
		}
	},
}
