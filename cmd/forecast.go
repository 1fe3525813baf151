package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mtichikawa/github-trend-forecaster/core"
	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/internal/gh"
)

// forecastCmd trains a model and projects future star growth.
var forecastCmd = &cobra.Command{
	Use:   "forecast <owner/repo>",
	Short: "Forecast future star growth for a collected repository.",
	Long: `Fit a forecasting model to the stored star history and project the
chosen number of future buckets, with upper and lower confidence bounds.

The report includes in-sample fit metrics (MAE, RMSE, R²) and a
rising-star verdict: a repository whose projected growth exceeds the
threshold relative to its current star count is flagged as rising.

Uses the stored dataset, collecting it first when absent.

Examples:
  # Forecast 90 days ahead (default)
  trendcast forecast golang/go

  # Weekly buckets, half a year out
  trendcast forecast golang/go --bucket week --horizon 26

  # Write the report as JSON and render an HTML chart
  trendcast forecast golang/go --output json --output-file report.json --plot chart.html`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		source, err := gh.NewClient(cfg)
		if err != nil {
			contract.LogFatal("Cannot create API client", err)
		}
		if err := core.EnsureDataset(rootCtx, cfg, source, storeManager, args[0]); err != nil {
			contract.LogStageFatal("Cannot collect star history", err, cfg.Debug)
		}
		if err := core.ExecuteForecast(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogStageFatal("Cannot run forecast", err, cfg.Debug)
		}
	},
}
