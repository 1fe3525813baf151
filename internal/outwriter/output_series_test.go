package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

func seriesFixture() seriesPayload {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := schema.TimeSeries{
		{Date: base, Count: 2},
		{Date: base.AddDate(0, 0, 1), Count: 0},
		{Date: base.AddDate(0, 0, 2), Count: 1},
	}
	return seriesPayload{
		Repo:   "golang/go",
		Bucket: schema.DayBucket,
		Total:  points.Total(),
		Points: points,
	}
}

func TestWriteSeriesTable(t *testing.T) {
	cfg := &contract.Config{
		Output:    schema.TextOut,
		Precision: 1,
		Width:     120,
	}

	var buf bytes.Buffer
	err := writeSeriesTable(&buf, seriesFixture(), cfg, 50*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "2024-01-01")
	assert.Contains(t, output, "2024-01-03")
	assert.Contains(t, output, "Series for golang/go: 3 buckets, 3 stars")
	assert.Contains(t, output, "bucket: day")
}

func TestWriteSeriesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVResultsForSeries(&buf, seriesFixture()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 buckets
	assert.Equal(t, []string{"repo", "bucket", "date", "count"}, records[0])
	assert.Equal(t, []string{"golang/go", "day", "2024-01-01", "2"}, records[1])
	assert.Equal(t, []string{"golang/go", "day", "2024-01-02", "0"}, records[2])
}

func TestWriteSeriesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, seriesFixture()))

	var decoded seriesPayload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "golang/go", decoded.Repo)
	assert.Equal(t, 3, decoded.Total)
	assert.Len(t, decoded.Points, 3)
}

func TestGetMaxTableLabelWidth(t *testing.T) {
	// Width override wins over detection.
	assert.Equal(t, 60, GetMaxTableLabelWidth(&contract.Config{Width: 200}))
	assert.Equal(t, 40, GetMaxTableLabelWidth(&contract.Config{Width: 80}))
	// Narrow terminals floor at the minimum label width.
	assert.Equal(t, 15, GetMaxTableLabelWidth(&contract.Config{Width: 30}))
}
