package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// CollectDataset fetches the full star history plus repository stats for
// one repository and persists the result, fully replacing any prior
// dataset under the same key. The completed run is appended to the run
// log when one is configured.
func CollectDataset(ctx context.Context, cfg *contract.Config, source contract.EventSource, mgr contract.StoreManager, owner, repo string) (*schema.Dataset, error) {
	start := time.Now()

	key := schema.DatasetKey(owner, repo)

	events, pages, err := source.FetchStarEvents(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("collecting %s: %w", key, err)
	}

	stats, err := source.FetchRepoStats(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("collecting %s: %w", key, err)
	}

	ds := &schema.Dataset{
		Owner:       owner,
		Repo:        repo,
		CollectedAt: time.Now().UTC(),
		Stats:       stats,
		Events:      events,
	}
	if err := mgr.GetDatasetStore().Save(ds); err != nil {
		return nil, fmt.Errorf("collecting %s: %w", key, err)
	}

	recordCollectionRun(mgr, cfg, ds, pages, start)
	return ds, nil
}

// recordCollectionRun appends the run to the run log. Run tracking is best
// effort: a failure warns and never fails the collection itself.
func recordCollectionRun(mgr contract.StoreManager, cfg *contract.Config, ds *schema.Dataset, pages int, start time.Time) {
	runs := mgr.GetRunStore()
	if runs == nil {
		return
	}
	_, err := runs.RecordRun(schema.CollectionRun{
		DatasetKey:  ds.Key(),
		EventCount:  len(ds.Events),
		StartedAt:   start.UTC(),
		Duration:    time.Since(start),
		TokenInUse:  cfg.Token != "",
		PagesParsed: pages,
	})
	if err != nil {
		contract.LogWarn("Run tracking failed", err)
	}
}

// logCollectHeader prints a concise, 2-line header for a collection.
func logCollectHeader(owner, repo string, tokenInUse bool) {
	mode := "anonymous"
	if tokenInUse {
		mode = "authenticated"
	}
	fmt.Fprintf(os.Stderr, "🔎 Repo: %s/%s (%s)\n", owner, repo, mode)
	fmt.Fprintf(os.Stderr, "⭐ Fetching star history...\n")
}

// logCollectResult prints a one-line summary after a collection.
func logCollectResult(ds *schema.Dataset, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "💾 Saved %d events for %s (%.1fs)\n",
		len(ds.Events), ds.Key(), duration.Seconds())
}
