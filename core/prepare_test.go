package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// starsOn builds a dataset with the given number of events per timestamp.
func starsOn(counts map[string]int) *schema.Dataset {
	ds := &schema.Dataset{Owner: "o", Repo: "r"}
	for ts, n := range counts {
		at, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			panic(err)
		}
		for range n {
			ds.Events = append(ds.Events, schema.StarEvent{Repo: "o/r", StarredAt: at})
		}
	}
	return ds
}

func TestPrepareSeriesDaily(t *testing.T) {
	ds := starsOn(map[string]int{
		"2024-01-01T09:00:00Z": 2,
		"2024-01-03T23:59:00Z": 1,
		"2024-01-05T00:00:00Z": 2,
	})

	series, err := PrepareSeries(ds, schema.DayBucket)
	require.NoError(t, err)

	// Five days inclusive, with zero-filled gaps on the 2nd and 4th.
	require.Len(t, series, 5)
	counts := make([]int, len(series))
	for i, p := range series {
		counts[i] = p.Count
	}
	assert.Equal(t, []int{2, 0, 1, 0, 2}, counts)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), series.Last().Date)
	assert.Equal(t, 5, series.Total())
}

func TestPrepareSeriesWeekly(t *testing.T) {
	// Wed Jan 3 falls in the week of Mon Jan 1; Sun Jan 14 falls in the
	// week of Mon Jan 8. The two weeks are adjacent.
	ds := starsOn(map[string]int{
		"2024-01-03T12:00:00Z": 3,
		"2024-01-14T12:00:00Z": 1,
	})

	series, err := PrepareSeries(ds, schema.WeekBucket)
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), series[1].Date)
	assert.Equal(t, 3, series[0].Count)
	assert.Equal(t, 1, series[1].Count)
}

func TestPrepareSeriesWeeklyZeroFill(t *testing.T) {
	ds := starsOn(map[string]int{
		"2024-01-01T00:00:00Z": 1,
		"2024-01-22T00:00:00Z": 1,
	})

	series, err := PrepareSeries(ds, schema.WeekBucket)
	require.NoError(t, err)

	require.Len(t, series, 4)
	assert.Equal(t, 0, series[1].Count)
	assert.Equal(t, 0, series[2].Count)
}

func TestPrepareSeriesNormalizesTimezones(t *testing.T) {
	// 2024-01-02T08:00+09:00 is 2024-01-01T23:00Z, so it lands on Jan 1.
	at, err := time.Parse(time.RFC3339, "2024-01-02T08:00:00+09:00")
	require.NoError(t, err)
	ds := &schema.Dataset{
		Owner:  "o",
		Repo:   "r",
		Events: []schema.StarEvent{{Repo: "o/r", StarredAt: at}},
	}

	series, err := PrepareSeries(ds, schema.DayBucket)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), series[0].Date)
}

func TestPrepareSeriesEmptyDataset(t *testing.T) {
	_, err := PrepareSeries(&schema.Dataset{Owner: "o", Repo: "r"}, schema.DayBucket)
	assert.ErrorIs(t, err, contract.ErrInsufficientData)

	_, err = PrepareSeries(nil, schema.DayBucket)
	assert.ErrorIs(t, err, contract.ErrInsufficientData)
}

func TestPrepareSeriesInvalidBucket(t *testing.T) {
	ds := starsOn(map[string]int{"2024-01-01T00:00:00Z": 1})
	_, err := PrepareSeries(ds, schema.Bucket("month"))
	assert.Error(t, err)
}

func TestFutureDates(t *testing.T) {
	series := schema.TimeSeries{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Count: 1},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Count: 1},
	}

	future := FutureDates(series, schema.DayBucket, 3)
	require.Len(t, future, 3)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), future[0])
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), future[2])

	weekly := FutureDates(series, schema.WeekBucket, 2)
	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), weekly[0])
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), weekly[1])
}
