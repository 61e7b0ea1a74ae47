package cmd

import (
	"fmt"

	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/internal/resultstore"
	"github.com/ckscope/ckscope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the results store with the loaded config
	if err := resultstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize results store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on results store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by pipeline commands. This avoids catalog and
// tool validation for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the results store (run history and summary rows)",
	Long: `Manage the results store that records batch runs and metric summaries.

When a backend is configured, ckscope records every batch run with its
summary rows, which 'ckscope runs' and 'ckscope status' report on and
which survive re-runs of the collection pipeline.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  clear   - Remove all recorded runs and summaries
  export  - Export run history to Parquet for analytics
  migrate - Run database schema migrations

Examples:
  # Export everything collected so far
  ckscope store export --output-file ck-data

  # Start a fresh collection campaign
  ckscope store clear`,
}

// storeClearCmd clears the results store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded batch runs and metric summaries",
	Long: `Delete all recorded batch runs and metric summary rows from the
configured backend.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the results tables

Examples:
  # Export before clearing
  ckscope store export --output-file backup
  ckscope store clear

  # Clear a MySQL store (set connection string via env variable)
  CKSCOPE_STORE_BACKEND=mysql CKSCOPE_STORE_DB_CONNECT="..." ckscope store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ClearResults(cfg.StoreBackend, resultstore.GetResultsDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear results store", err)
		}
		fmt.Println("Results store cleared successfully.")
	},
}

// storeExportCmd exports stored run data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history and summaries to Parquet for analytics",
	Long: `Export all stored batch data to Parquet format for use with analytics
tools.

Exports two datasets:
- Batch runs - metadata about each collection run
- Metric summaries - the per-repository summary rows each run produced

Parquet format enables fast querying with DuckDB, Apache Spark and pandas,
and direct import into BI tools.

Requires: --output-file parameter (used as the filename prefix)

Examples:
  # Export all data
  ckscope store export --output-file ck-data

  # Inspect with DuckDB
  ckscope store export --output-file ck-data
  duckdb -c "SELECT * FROM read_parquet('ck-data.metric_summaries.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ExecuteResultsExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export results store", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the results store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the results store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  ckscope store migrate

  # Migrate to specific version
  ckscope store migrate --target-version 1

  # Rollback to initial state
  ckscope store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := resultstore.MigrateResults(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
