package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitpulse/gitpulse/core"
	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/store"
	"github.com/gitpulse/gitpulse/schema"
)

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("db-backend")
	connStr := viper.GetString("db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetDBFilePath()
	}

	cfg.Backend = backend
	cfg.DBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on commit store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the commit store.",
	Long: `Manage the store that holds synced commit history.

Subcommands:
  status  - Show backend, repository and commit counts
  clear   - Delete all stored repositories and commits
  migrate - Run store schema migrations`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// storeStatusCmd shows backend and row counts.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show store backend and row counts.",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStoreStatus(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot read store status", err)
		}
	},
}

// storeClearCmd deletes all stored rows.
var storeClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Delete all stored repositories and commits.",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStoreClear(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot clear store", err)
		}
	},
}

// storeMigrateCmd runs schema migrations for the commit store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run store schema migrations.",
	Long: `Run schema migrations against the configured store backend.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  gitpulse store migrate

  # Migrate to specific version
  gitpulse store migrate --target-version 2

  # Rollback everything
  gitpulse store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.Migrate(cfg.Backend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot run store migrations", err)
		}
	},
}
