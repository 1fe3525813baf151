package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/internal/store"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// runsSetup loads minimal configuration needed for run log operations.
// This is used by commands that need the run log without full shared setup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run log config values
	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("run-backend")))
	connStr := viper.GetString("run-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	if cfg.DataDir == "" {
		cfg.DataDir = contract.DefaultDataDir()
	}

	// Initialize stores with the loaded config
	if err := store.InitStores(cfg); err != nil {
		return fmt.Errorf("failed to initialize run log: %w", err)
	}
	storeManager = store.Manager

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for run log commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("run-backend")))
	connStr := viper.GetString("run-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunDBFilePath()
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on collection run tracking.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by pipeline commands. This avoids API client
// setup and complex config processing for simple run log operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage the collection run log",
	Long: `Manage the log of collection runs recorded by 'trendcast collect'.

Every collection records one row: which dataset was refreshed, how many
events it holds, how long the crawl took and whether a token was used.
The log is an audit trail and does not affect forecasting.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run log statistics and connection info
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check run log status
  trendcast runs status

  # Clear the run log
  trendcast runs clear`,
}

// runsStatusCmd shows run log status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run log statistics and connection details",
	Long: `Show detailed information about the collection run log.

Displays:
- Backend type and connection status
- Total number of recorded runs
- Last run identifier and timestamp
- Total events collected across all runs

Examples:
  # Check run log status
  trendcast runs status`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run log status", err)
		}
		store.PrintRunStatus(status)
	},
}

// runsClearCmd clears the run log.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded collection runs",
	Long: `Delete all recorded collection runs from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the run log table

Examples:
  # Clear SQLite run log (default)
  trendcast runs clear

  # Clear MySQL run log (set connection string via env variable)
  TRENDCAST_RUN_BACKEND=mysql TRENDCAST_RUN_DB_CONNECT="..." trendcast runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ClearRuns(cfg.RunBackend, contract.GetRunDBFilePath(), cfg.RunDBConnect); err != nil {
			contract.LogFatal("Failed to clear run log", err)
		}
		fmt.Println("Run log cleared successfully.")
	},
}

// runsMigrateCmd runs database migrations for the run log store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the collection run log.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  trendcast runs migrate

  # Migrate to specific version
  trendcast runs migrate --target-version 1

  # Rollback to previous version
  trendcast runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.MigrateRuns(cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
