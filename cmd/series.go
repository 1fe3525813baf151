package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mtichikawa/github-trend-forecaster/core"
	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
)

// seriesCmd prints the bucketed star time series.
var seriesCmd = &cobra.Command{
	Use:   "series <owner/repo>",
	Short: "Show the bucketed star time series for a collected repository.",
	Long: `Turn a stored star dataset into a regular time series: one row per
calendar day or week, zero-filled so there are no gaps.

The series is derived on the fly from the stored events, so switching
between day and week buckets needs no re-collection.

Examples:
  # Daily series as a table
  trendcast series golang/go

  # Weekly series exported as CSV
  trendcast series golang/go --bucket week --output csv --output-file series.csv

  # Parquet export for notebook analysis
  trendcast series golang/go --output parquet --output-file series.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSeries(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogStageFatal("Cannot build series", err, cfg.Debug)
		}
	},
}
