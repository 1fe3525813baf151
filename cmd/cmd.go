// Package cmd defines the command-line interface for trendcast.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the datasets subcommands to the parent datasets command
	datasetsCmd.AddCommand(datasetsListCmd)
	datasetsCmd.AddCommand(datasetsDeleteCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for dataset files (defaults to ~/.trendcast/data)")
	rootCmd.PersistentFlags().String("token", "", "API token (falls back to GITHUB_TOKEN or GH_TOKEN)")
	rootCmd.PersistentFlags().String("base-url", "", "API base URL override for GitHub Enterprise")
	rootCmd.PersistentFlags().Int("max-pages", contract.DefaultMaxPages, "Page ceiling for the stargazer listing")
	rootCmd.PersistentFlags().Int("per-page", contract.DefaultPerPage, "Events per API page (1-100)")
	rootCmd.PersistentFlags().StringP("bucket", "b", string(schema.DayBucket), "Bucket granularity: day or week")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("run-backend", string(schema.SQLiteBackend), "Run log backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("debug", false, "Print full error chains instead of stage summaries")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of forecastCmd to Viper
	forecastCmd.Flags().Int("horizon", contract.DefaultHorizon, "Number of future buckets to forecast")
	forecastCmd.Flags().Float64("rising-threshold", contract.DefaultRisingThreshold, "Projected growth ratio that flags a rising star")
	forecastCmd.Flags().String("plot", "", "Optional path for an HTML forecast chart")
	if err := viper.BindPFlags(forecastCmd.Flags()); err != nil {
		contract.LogFatal("Error binding forecast flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
