package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mtichikawa/github-trend-forecaster/core"
	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/internal/gh"
)

// collectCmd fetches and stores star history.
var collectCmd = &cobra.Command{
	Use:   "collect <owner/repo> [owner/repo...]",
	Short: "Fetch the full star history of one or more repositories.",
	Long: `Walk the stargazer listing of each repository page by page and store
the resulting event dataset locally, one file per repository.

Re-collecting a repository replaces its dataset entirely, so the stored
data always reflects a single consistent crawl.

Anonymous requests work but are heavily rate limited. Set a token via
--token, GITHUB_TOKEN or GH_TOKEN for anything beyond small repositories.

Examples:
  # Collect one repository
  trendcast collect golang/go

  # Collect several repositories in one run
  trendcast collect golang/go rust-lang/rust

  # Cap the crawl for very large repositories
  trendcast collect torvalds/linux --max-pages 100`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		source, err := gh.NewClient(cfg)
		if err != nil {
			contract.LogFatal("Cannot create API client", err)
		}
		if err := core.ExecuteCollect(rootCtx, cfg, source, storeManager, args); err != nil {
			contract.LogStageFatal("Cannot collect star history", err, cfg.Debug)
		}
	},
}
