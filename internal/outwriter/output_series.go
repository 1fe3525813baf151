package outwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/internal/parquet"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// seriesPayload is the JSON shape of a prepared series.
type seriesPayload struct {
	Repo   string            `json:"repo"`
	Bucket schema.Bucket     `json:"bucket"`
	Total  int               `json:"total"`
	Points schema.TimeSeries `json:"points"`
}

// PrintSeries outputs the prepared series, dispatching based on the output
// format configured.
func PrintSeries(ds *schema.Dataset, series schema.TimeSeries, cfg *contract.Config, duration time.Duration) error {
	repoKey := ds.Owner + "/" + ds.Repo
	payload := seriesPayload{
		Repo:   repoKey,
		Bucket: cfg.Bucket,
		Total:  series.Total(),
		Points: series,
	}

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeries(payload, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeries(payload, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForSeries(payload, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeSeriesTable(os.Stdout, payload, cfg, duration); err != nil {
			return fmt.Errorf("error writing series table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSeries handles opening the file and calling the JSON writer.
func printJSONResultsForSeries(payload seriesPayload, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, payload)
	}, "Wrote JSON series")
}

// printCSVResultsForSeries handles opening the file and calling the CSV writer.
func printCSVResultsForSeries(payload seriesPayload, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForSeries(w, payload)
	}, "Wrote CSV series")
}

// printParquetResultsForSeries exports the series to a Parquet file.
// Parquet is a binary format, so a concrete output file is required.
func printParquetResultsForSeries(payload seriesPayload, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	rows := parquet.ConvertSeries(payload.Repo, payload.Bucket, payload.Points)
	if err := parquet.WriteSeriesParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet series to %s\n", cfg.OutputFile)
	return nil
}

// writeSeriesTable writes the series as a three-column table.
func writeSeriesTable(w io.Writer, payload seriesPayload, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Date", "New Stars", "Total"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	running := 0
	for _, p := range payload.Points {
		running += p.Count
		row := []string{
			schema.FormatBucketDate(p.Date),
			strconv.Itoa(p.Count),
			strconv.Itoa(running),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	label := contract.TruncateLabel(payload.Repo, GetMaxTableLabelWidth(cfg))
	fmt.Fprintf(w, "Series for %s: %d buckets, %d stars (bucket: %s, completed in %v)\n",
		label, len(payload.Points), payload.Total, payload.Bucket, duration)
	return nil
}
