// Package parquet provides data structures and functions for exporting
// prepared series and forecast results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// SeriesRow represents one bucket of a prepared star series.
type SeriesRow struct {
	// Repo is the repository key in owner/name form
	Repo string `parquet:"repo,snappy"`

	// Bucket is the aggregation unit the series was built on
	Bucket string `parquet:"bucket,snappy"`

	// Date is the bucket start date (stored as TIMESTAMP with nanosecond precision)
	Date time.Time `parquet:"date,snappy"`

	// Count is the number of new stars in this bucket
	Count int32 `parquet:"count,snappy"`
}

// ForecastRow represents one point of a forecast result, covering both the
// fitted history range and the future horizon.
type ForecastRow struct {
	// Repo is the repository key in owner/name form
	Repo string `parquet:"repo,snappy"`

	// Bucket is the aggregation unit the model was fitted on
	Bucket string `parquet:"bucket,snappy"`

	// Date is the bucket start date (stored as TIMESTAMP with nanosecond precision)
	Date time.Time `parquet:"date,snappy"`

	// Point is the forecasted new-star count for this bucket
	Point float64 `parquet:"point,snappy"`

	// Lower is the lower bound of the uncertainty interval
	Lower float64 `parquet:"lower,snappy"`

	// Upper is the upper bound of the uncertainty interval
	Upper float64 `parquet:"upper,snappy"`

	// Future marks points beyond the last observed bucket
	Future bool `parquet:"future,snappy"`
}

// WriteSeriesParquet writes a slice of SeriesRow structs to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the SeriesRow struct tags
	writer := parquet.NewGenericWriter[SeriesRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteForecastParquet writes a slice of ForecastRow structs to a Parquet file.
func WriteForecastParquet(data []ForecastRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ForecastRow struct tags
	writer := parquet.NewGenericWriter[ForecastRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertSeries converts a prepared series to SeriesRow records for Parquet export.
func ConvertSeries(repo string, bucket schema.Bucket, series schema.TimeSeries) []SeriesRow {
	result := make([]SeriesRow, len(series))
	for i, p := range series {
		result[i] = SeriesRow{
			Repo:   repo,
			Bucket: string(bucket),
			Date:   p.Date,
			Count:  int32(p.Count),
		}
	}
	return result
}

// ConvertForecast converts a forecast result to ForecastRow records for Parquet export.
func ConvertForecast(result *schema.ForecastResult) []ForecastRow {
	rows := make([]ForecastRow, len(result.Points))
	for i, p := range result.Points {
		rows[i] = ForecastRow{
			Repo:   result.Repo,
			Bucket: string(result.Bucket),
			Date:   p.Date,
			Point:  p.Point,
			Lower:  p.Lower,
			Upper:  p.Upper,
			Future: i >= result.History,
		}
	}
	return rows
}
