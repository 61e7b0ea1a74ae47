// Package cmd defines the command-line interface for ckscope.
package cmd

import (
	"github.com/ckscope/ckscope/internal/contract"
	"github.com/ckscope/ckscope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper. Flags read by more than
	// one subcommand live here so each name binds exactly once.
	rootCmd.PersistentFlags().String("catalog", contract.DefaultCatalogFile, "Path to the repository catalog CSV")
	rootCmd.PersistentFlags().String("results", contract.DefaultResultsFile, "Path to the accumulated metric summaries CSV")
	rootCmd.PersistentFlags().String("token", "", "API token for hosted requests (falls back to GITHUB_TOKEN)")
	rootCmd.PersistentFlags().String("delay", contract.DefaultDelay, "Pause between remote requests (e.g. 2s, 500ms)")
	rootCmd.PersistentFlags().String("settle", contract.DefaultSettle, "Wait between clone and metrics run")
	rootCmd.PersistentFlags().String("ck-jar", contract.DefaultCKJar, "Path to the CK metrics tool JAR")
	rootCmd.PersistentFlags().String("scratch-dir", "", "Directory for temporary clones (empty = system temp dir)")
	rootCmd.PersistentFlags().String("output-dir", contract.DefaultOutputRoot, "Directory for per-repository metric files")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Results store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of fetchCmd to Viper
	fetchCmd.Flags().String("language", contract.DefaultLanguage, "Primary language to search for")
	fetchCmd.Flags().Int("pages", contract.DefaultPages, "Number of search pages to walk")
	fetchCmd.Flags().Int("per-page", contract.DefaultPerPage, "Results per search page (max 100)")
	if err := viper.BindPFlags(fetchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding fetch flags", err)
	}

	// Bind all flags of batchCmd to Viper
	batchCmd.Flags().Int("start-offset", 0, "Catalog rows to skip before the first analysis")
	batchCmd.Flags().Int("max-repos", 0, "Maximum repositories to analyze (0 = whole catalog)")
	if err := viper.BindPFlags(batchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding batch flags", err)
	}

	// Bind all flags of statsCmd to Viper
	statsCmd.Flags().String("report", contract.DefaultReportFile, "Path for the Markdown report (empty disables it)")
	statsCmd.Flags().Int("min-classes", contract.DefaultMinClasses, "Minimum classes a repository needs to join the correlation")
	if err := viper.BindPFlags(statsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding stats flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
