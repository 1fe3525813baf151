// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// EventSource defines the operations needed against the hosting platform.
// This allows the core pipeline logic to be tested without network access.
type EventSource interface {
	// FetchStarEvents returns the full star event history for a repository
	// in starred-at order, plus the number of pages consumed.
	FetchStarEvents(ctx context.Context, owner, repo string) ([]schema.StarEvent, int, error)

	// FetchRepoStats returns a point-in-time snapshot of repository counters.
	FetchRepoStats(ctx context.Context, owner, repo string) (*schema.RepoStats, error)
}

// DatasetStore defines durable storage for collected datasets.
// Save fully replaces any prior dataset under the same key.
type DatasetStore interface {
	Save(ds *schema.Dataset) error
	Load(key string) (*schema.Dataset, error)
	Delete(key string) error
	List() ([]string, error)
}

// RunStore defines the interface for the collection run log.
// This allows mocking the store for testing.
type RunStore interface {
	// RecordRun appends a completed collection run and returns its ID.
	RecordRun(run schema.CollectionRun) (int64, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing the persistence layer.
type StoreManager interface {
	GetDatasetStore() DatasetStore
	GetRunStore() RunStore
}
