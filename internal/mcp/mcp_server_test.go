package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	mcp_internal "github.com/mtichikawa/github-trend-forecaster/internal/mcp"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		Bucket:  schema.DayBucket,
		Horizon: contract.DefaultHorizon,
	}

	// Dummy dependencies are fine here since validation fails before use
	var source contract.EventSource
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseCfg, source, mgr)

	ctx := context.Background()

	t.Run("collect_stars invalid repo", func(t *testing.T) {
		tool := s.GetTool("collect_stars")
		require.NotNil(t, tool, "Tool collect_stars should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "collect_stars",
				Arguments: map[string]any{
					"repo": "not-a-ref",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid repository reference")
	})

	t.Run("get_star_series invalid bucket", func(t *testing.T) {
		tool := s.GetTool("get_star_series")
		require.NotNil(t, tool, "Tool get_star_series should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_star_series",
				Arguments: map[string]any{
					"repo":   "golang/go",
					"bucket": "month", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid bucket")
	})

	t.Run("forecast_stars invalid bucket", func(t *testing.T) {
		tool := s.GetTool("forecast_stars")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "forecast_stars",
				Arguments: map[string]any{
					"repo":   "golang/go",
					"bucket": "hourly", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid bucket")
	})
}
