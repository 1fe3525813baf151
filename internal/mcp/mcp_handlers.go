package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mtichikawa/github-trend-forecaster/core"
	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	source  contract.EventSource
	mgr     contract.StoreManager
}

// applyBucket copies the bucket argument into the config after validation.
func applyBucket(cfg *contract.Config, request mcp.CallToolRequest) error {
	b := request.GetString("bucket", "")
	if b == "" {
		return nil
	}
	if _, ok := schema.ValidBuckets[schema.Bucket(b)]; !ok {
		return fmt.Errorf("invalid bucket %q, expected day or week", b)
	}
	cfg.Bucket = schema.Bucket(b)
	return nil
}

func (h *toolHandler) handleCollectStars(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	repo := request.GetString("repo", "")
	if p := request.GetInt("max_pages", 0); p > 0 {
		cfg.MaxPages = p
	}

	owner, name, err := schema.ParseRepoRef(repo)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository reference: %v", err)), nil
	}

	ds, err := core.CollectDataset(ctx, cfg, h.source, h.mgr, owner, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("collection failed: %v", err)), nil
	}

	summary := map[string]any{
		"key":          ds.Key(),
		"events":       len(ds.Events),
		"collected_at": ds.CollectedAt,
		"stats":        ds.Stats,
	}
	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStarSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	repo := request.GetString("repo", "")
	if err := applyBucket(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ds, series, err := core.GetSeriesResults(cfg, h.mgr, repo)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series preparation failed: %v", err)), nil
	}

	payload := map[string]any{
		"repo":   ds.Owner + "/" + ds.Repo,
		"bucket": cfg.Bucket,
		"total":  series.Total(),
		"points": series,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleForecastStars(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	repo := request.GetString("repo", "")
	if err := applyBucket(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if v := request.GetInt("horizon", 0); v > 0 {
		cfg.Horizon = v
	}
	if v := request.GetFloat("rising_threshold", 0); v > 0 {
		cfg.RisingThreshold = v
	}

	report, _, err := core.GetForecastResults(cfg, h.mgr, repo)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forecast failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListDatasets(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := core.GetDatasetEntries(h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
