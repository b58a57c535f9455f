// Package cmd defines the command-line interface for gitpulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(branchesCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the repos subcommands to the parent repos command
	reposCmd.AddCommand(reposAddCmd)
	reposCmd.AddCommand(reposRemoveCmd)
	reposCmd.AddCommand(reposListCmd)
	reposCmd.AddCommand(reposScanCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("filter", "f", string(schema.TodayFilter), "Date window: today, yesterday, last3days, lastweek, lastmonth, last2months, last3months, custom")
	rootCmd.PersistentFlags().String("start", "", "Start date (2006-01-02) for the custom window")
	rootCmd.PersistentFlags().String("end", "", "End date (2006-01-02) for the custom window")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Persistence backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultAuthorLimit, "Number of authors to display")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of authorsCmd to Viper
	authorsCmd.Flags().String("author", "", "Filter to one author email")
	if err := viper.BindPFlags(authorsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding authors flags", err)
	}

	// Bind all flags of branchesCmd to Viper
	branchesCmd.Flags().String("branch", "", "Show contributors to one branch")
	branchesCmd.Flags().String("repo", "", "Repository name, required with --branch")
	if err := viper.BindPFlags(branchesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding branches flags", err)
	}

	// Bind all flags of reposScanCmd to Viper
	reposScanCmd.Flags().Int("scan-depth", contract.DefaultScanDepth, "How many directory levels to descend while scanning")
	if err := viper.BindPFlags(reposScanCmd.Flags()); err != nil {
		contract.LogFatal("Error binding repos scan flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().Int("days", 30, "How many days of commits-by-day history to include")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
