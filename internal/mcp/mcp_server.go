// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
)

// NewMCPServer initializes and configures the Trendcast MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, source contract.EventSource, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Trendcast Forecast Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		source:  source,
		mgr:     mgr,
	}

	// --- 1. Tool: collect_stars ---
	s.AddTool(mcp.NewTool("collect_stars",
		mcp.WithDescription("Fetch the full star history of a GitHub repository and store it as a local dataset."),
		mcp.WithString("repo", mcp.Description("Repository in owner/name form (e.g. 'golang/go')."), mcp.Required()),
		mcp.WithNumber("max_pages", mcp.Description("Page ceiling for the stargazer listing.")),
	), h.handleCollectStars)

	// --- 2. Tool: get_star_series ---
	s.AddTool(mcp.NewTool("get_star_series",
		mcp.WithDescription("Build the bucketed star time series from a previously collected dataset."),
		mcp.WithString("repo", mcp.Description("Repository in owner/name form."), mcp.Required()),
		mcp.WithString("bucket", mcp.Description("Bucket granularity (day, week). Defaults to 'day'."), mcp.Enum("day", "week")),
	), h.handleGetStarSeries)

	// --- 3. Tool: forecast_stars ---
	s.AddTool(mcp.NewTool("forecast_stars",
		mcp.WithDescription("Forecast future star growth for a previously collected dataset, with confidence bounds and a rising-star verdict."),
		mcp.WithString("repo", mcp.Description("Repository in owner/name form."), mcp.Required()),
		mcp.WithString("bucket", mcp.Description("Bucket granularity (day, week)."), mcp.Enum("day", "week")),
		mcp.WithNumber("horizon", mcp.Description("Number of future buckets to forecast.")),
		mcp.WithNumber("rising_threshold", mcp.Description("Projected growth ratio above which a repository counts as a rising star.")),
	), h.handleForecastStars)

	// --- 4. Tool: list_datasets ---
	s.AddTool(mcp.NewTool("list_datasets",
		mcp.WithDescription("List all locally stored star datasets with their event counts."),
	), h.handleListDatasets)

	return s
}

// StartMCPServer starts the Trendcast MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, source contract.EventSource, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, source, mgr)
	return server.ServeStdio(s)
}
