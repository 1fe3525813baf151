// Package schema has configs, models and shared constants for all parts of trendcast.
package schema

import "time"

// StarEvent is a single star given to a repository at a point in time.
// Events are immutable once fetched and are persisted verbatim.
type StarEvent struct {
	Repo      string    `json:"repo"`            // Repository key in owner/name form
	StarredAt time.Time `json:"starred_at"`      // UTC timestamp of the star
	Actor     string    `json:"actor,omitempty"` // Login of the starring user, if known
}

// RepoStats is a point-in-time snapshot of repository counters and metadata.
type RepoStats struct {
	FullName    string    `json:"full_name"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Watchers    int       `json:"watchers"`
	OpenIssues  int       `json:"open_issues"`
	Language    string    `json:"language,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Dataset is the full collection of star events for one repository plus
// collection metadata. It is identified by the key {owner}_{repo} and is
// fully replaced on re-collection (no append or merge semantics).
type Dataset struct {
	Owner       string      `json:"owner"`
	Repo        string      `json:"repo"`
	CollectedAt time.Time   `json:"collected_at"`
	Stats       *RepoStats  `json:"stats,omitempty"`
	Events      []StarEvent `json:"events"`
}

// Key returns the stable storage key for this dataset.
func (d *Dataset) Key() string {
	return DatasetKey(d.Owner, d.Repo)
}

// SeriesPoint is one bucket of the regular time series: a calendar date and
// the number of star events that fell into that bucket.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// TimeSeries is an ordered sequence of bucketed counts with strictly
// increasing dates, uniform step size and no gaps. It is derived
// deterministically from a Dataset and never persisted.
type TimeSeries []SeriesPoint

// Total returns the sum of counts across all buckets.
func (ts TimeSeries) Total() int {
	total := 0
	for _, p := range ts {
		total += p.Count
	}
	return total
}

// Last returns the final point of the series. It panics on an empty series;
// callers must check length first.
func (ts TimeSeries) Last() SeriesPoint {
	return ts[len(ts)-1]
}

// ForecastPoint is one forecasted bucket with its point estimate and
// uncertainty interval (Lower <= Point <= Upper).
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Point float64   `json:"point"`
	Lower float64   `json:"lower"`
	Upper float64   `json:"upper"`
}

// ForecastResult covers the fitted history range plus the future horizon.
// The first Horizon-tagged point starts exactly one bucket after the last
// historical date.
type ForecastResult struct {
	Repo    string          `json:"repo"`    // Repository key in owner/name form
	Bucket  Bucket          `json:"bucket"`  // Aggregation unit the model was fitted on
	History int             `json:"history"` // Number of leading points that cover fitted history
	Horizon int             `json:"horizon"` // Number of trailing future points
	Points  []ForecastPoint `json:"points"`
}

// HistoryPoints returns the leading points that cover the fitted history.
func (r *ForecastResult) HistoryPoints() []ForecastPoint {
	return r.Points[:r.History]
}

// FuturePoints returns the trailing points beyond the last historical date.
func (r *ForecastResult) FuturePoints() []ForecastPoint {
	return r.Points[r.History:]
}

// EvalMetrics holds fit accuracy metrics of the model against held history.
type EvalMetrics struct {
	MAE     float64 `json:"mae"`
	RMSE    float64 `json:"rmse"`
	R2      float64 `json:"r2"`
	Samples int     `json:"samples"`
}

// ForecastReport bundles everything the forecast command reports for one
// repository: the projection itself, in-sample accuracy and the rising
// star verdict.
type ForecastReport struct {
	Result  *ForecastResult `json:"result"`
	Metrics *EvalMetrics    `json:"metrics,omitempty"`
	Rising  bool            `json:"rising"`
	Growth  float64         `json:"growth"`
}

// CollectionRun records one completed collection for the run log.
type CollectionRun struct {
	RunID       int64         `json:"run_id"`
	DatasetKey  string        `json:"dataset_key"`
	EventCount  int           `json:"event_count"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	TokenInUse  bool          `json:"token_in_use"`
	PagesParsed int           `json:"pages_parsed"`
}

// RunStatus returns status information about the run log store.
type RunStatus struct {
	Backend     string    `json:"backend"`
	Connected   bool      `json:"connected"`
	TotalRuns   int64     `json:"total_runs"`
	LastRunID   int64     `json:"last_run_id"`
	LastRunTime time.Time `json:"last_run_time"`
	TotalEvents int64     `json:"total_events"`
}
