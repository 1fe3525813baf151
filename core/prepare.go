package core

import (
	"fmt"
	"time"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// PrepareSeries converts a dataset into a regular bucketed time series.
// The series runs from the bucket of the earliest event through the bucket
// of the latest event with no gaps: buckets in between that saw no stars
// appear with a zero count. The result is deterministic for a given
// dataset and bucket.
func PrepareSeries(ds *schema.Dataset, bucket schema.Bucket) (schema.TimeSeries, error) {
	if ds == nil || len(ds.Events) == 0 {
		return nil, fmt.Errorf("%w: dataset has no star events to prepare", contract.ErrInsufficientData)
	}
	if _, ok := schema.ValidBuckets[bucket]; !ok {
		return nil, fmt.Errorf("invalid bucket: %s", bucket)
	}

	counts := make(map[time.Time]int)
	var first, last time.Time
	for _, ev := range ds.Events {
		day := schema.BucketStart(ev.StarredAt, bucket)
		counts[day]++
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	step := schema.BucketStep(bucket)
	var series schema.TimeSeries
	for cur := first; !cur.After(last); cur = step(cur) {
		series = append(series, schema.SeriesPoint{Date: cur, Count: counts[cur]})
	}
	return series, nil
}

// SeriesDates returns the bucket dates of a series, in order.
func SeriesDates(series schema.TimeSeries) []time.Time {
	dates := make([]time.Time, len(series))
	for i, p := range series {
		dates[i] = p.Date
	}
	return dates
}

// FutureDates returns the next n bucket dates following the last date of
// the series, spaced by the bucket step.
func FutureDates(series schema.TimeSeries, bucket schema.Bucket, n int) []time.Time {
	step := schema.BucketStep(bucket)
	dates := make([]time.Time, 0, n)
	cur := series.Last().Date
	for range n {
		cur = step(cur)
		dates = append(dates, cur)
	}
	return dates
}
