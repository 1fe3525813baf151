package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mtichikawa/github-trend-forecaster/internal/gh"
	"github.com/mtichikawa/github-trend-forecaster/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Trendcast MCP server",
	Long:  `Launch an MCP server that allows AI agents to collect star history and run forecasts via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdout carries the protocol in MCP mode, so setup must not
		// print anything there.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		source, err := gh.NewClient(cfg)
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, cfg, source, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
