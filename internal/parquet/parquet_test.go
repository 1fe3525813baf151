package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

func testSeries() schema.TimeSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return schema.TimeSeries{
		{Date: base, Count: 2},
		{Date: base.AddDate(0, 0, 1), Count: 0},
		{Date: base.AddDate(0, 0, 2), Count: 1},
	}
}

func TestConvertSeries(t *testing.T) {
	rows := ConvertSeries("golang/go", schema.DayBucket, testSeries())
	require.Len(t, rows, 3)
	assert.Equal(t, "golang/go", rows[0].Repo)
	assert.Equal(t, "day", rows[0].Bucket)
	assert.Equal(t, int32(2), rows[0].Count)
	assert.Equal(t, int32(0), rows[1].Count)
}

func TestConvertForecast(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	result := &schema.ForecastResult{
		Repo:    "golang/go",
		Bucket:  schema.DayBucket,
		History: 2,
		Horizon: 1,
		Points: []schema.ForecastPoint{
			{Date: base, Point: 2, Lower: 1, Upper: 3},
			{Date: base.AddDate(0, 0, 1), Point: 1, Lower: 0, Upper: 2},
			{Date: base.AddDate(0, 0, 2), Point: 1.5, Lower: 0.5, Upper: 2.5},
		},
	}

	rows := ConvertForecast(result)
	require.Len(t, rows, 3)
	assert.False(t, rows[0].Future)
	assert.False(t, rows[1].Future)
	assert.True(t, rows[2].Future)
	assert.Equal(t, 1.5, rows[2].Point)
}

func TestWriteSeriesParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.parquet")
	rows := ConvertSeries("golang/go", schema.DayBucket, testSeries())

	require.NoError(t, WriteSeriesParquet(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteForecastParquetBadPath(t *testing.T) {
	err := WriteForecastParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
