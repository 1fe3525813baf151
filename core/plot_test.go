package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

func plotFixture() (*schema.ForecastResult, schema.TimeSeries) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := schema.TimeSeries{
		{Date: base, Count: 3},
		{Date: base.AddDate(0, 0, 1), Count: 5},
	}
	result := &schema.ForecastResult{
		Repo:    "golang/go",
		Bucket:  schema.DayBucket,
		History: 2,
		Horizon: 2,
		Points: []schema.ForecastPoint{
			{Date: base, Point: 3, Lower: 2, Upper: 4},
			{Date: base.AddDate(0, 0, 1), Point: 5, Lower: 4, Upper: 6},
			{Date: base.AddDate(0, 0, 2), Point: 6, Lower: 5, Upper: 7},
			{Date: base.AddDate(0, 0, 3), Point: 7, Lower: 6, Upper: 8},
		},
	}
	return result, history
}

func TestRenderForecastChartWritesHTML(t *testing.T) {
	result, history := plotFixture()
	path := filepath.Join(t.TempDir(), "chart.html")

	require.NoError(t, RenderForecastChart(result, history, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "golang/go")
	assert.Contains(t, html, "Forecast")
	assert.Contains(t, html, "2024-01-03")
}

func TestRenderForecastChartBadPath(t *testing.T) {
	result, history := plotFixture()
	err := RenderForecastChart(result, history, filepath.Join(t.TempDir(), "missing", "chart.html"))
	assert.Error(t, err)
}
