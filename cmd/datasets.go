package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mtichikawa/github-trend-forecaster/core"
	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/internal/store"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// datasetsSetup loads minimal configuration needed for dataset operations.
// This is used by commands that need the dataset store without full shared setup.
func datasetsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	dir := viper.GetString("data-dir")
	if dir == "" {
		dir = contract.DefaultDataDir()
	}
	cfg.DataDir = dir

	// Dataset commands never touch the run log
	cfg.RunBackend = schema.NoneBackend

	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output '%s'. must be text, csv, json or parquet", viper.GetString("output"))
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")

	if err := store.InitStores(cfg); err != nil {
		return fmt.Errorf("failed to initialize dataset store: %w", err)
	}
	storeManager = store.Manager

	return nil
}

// datasetsSetupWrapper wraps datasetsSetup to provide PreRunE for dataset commands.
func datasetsSetupWrapper(_ *cobra.Command, _ []string) error {
	return datasetsSetup()
}

// datasetsCmd focused on dataset management.
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Manage locally stored star datasets",
	Long: `Manage the star datasets collected by 'trendcast collect'.

Each dataset is one file per repository under the data directory
(defaults to ~/.trendcast/data) and is replaced wholesale on
re-collection.

Subcommands:
  list   - Show all stored datasets with event counts
  delete - Remove a stored dataset

Examples:
  # Show everything collected so far
  trendcast datasets list

  # Remove a dataset you no longer track
  trendcast datasets delete golang/go`,
}

// datasetsListCmd lists stored datasets.
var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all stored datasets with their event counts",
	Long: `List every stored dataset, with event count, star count from the
last collection snapshot and the collection timestamp.

Examples:
  # Table listing
  trendcast datasets list

  # JSON listing for scripting
  trendcast datasets list --output json`,
	PreRunE: datasetsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDatasetList(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list datasets", err)
		}
	},
}

// datasetsDeleteCmd deletes a stored dataset.
var datasetsDeleteCmd = &cobra.Command{
	Use:   "delete <owner/repo>",
	Short: "Remove a stored dataset",
	Long: `Delete the stored dataset for one repository. Deleting a dataset
that does not exist is not an error.

Examples:
  trendcast datasets delete golang/go`,
	Args:    cobra.ExactArgs(1),
	PreRunE: datasetsSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		owner, repo, err := schema.ParseRepoRef(args[0])
		if err != nil {
			contract.LogFatal("Invalid repository reference", err)
		}
		key := schema.DatasetKey(owner, repo)
		if err := storeManager.GetDatasetStore().Delete(key); err != nil {
			contract.LogFatal("Cannot delete dataset", err)
		}
		fmt.Printf("Deleted dataset %s.\n", key)
	},
}
