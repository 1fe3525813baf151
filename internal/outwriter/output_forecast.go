package outwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/internal/parquet"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// PrintForecast outputs the forecast report, dispatching based on the
// output format configured.
func PrintForecast(report *schema.ForecastReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForForecast(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForForecast(report, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForForecast(report, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable summary plus table
		if err := writeForecastTable(os.Stdout, report, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing forecast table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForForecast handles opening the file and calling the JSON writer.
func printJSONResultsForForecast(report *schema.ForecastReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON forecast")
}

// printCSVResultsForForecast handles opening the file and calling the CSV writer.
func printCSVResultsForForecast(report *schema.ForecastReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForForecast(w, report, fmtFloat)
	}, "Wrote CSV forecast")
}

// printParquetResultsForForecast exports the forecast to a Parquet file.
// Parquet is a binary format, so a concrete output file is required.
func printParquetResultsForForecast(report *schema.ForecastReport, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	rows := parquet.ConvertForecast(report.Result)
	if err := parquet.WriteForecastParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet forecast to %s\n", cfg.OutputFile)
	return nil
}

// writeForecastTable writes the summary block and the future buckets.
func writeForecastTable(w io.Writer, report *schema.ForecastReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	result := report.Result

	var projected float64
	for _, p := range result.FuturePoints() {
		projected += p.Point
	}

	label := contract.GetPlainTrendLabel(report.Growth, cfg.RisingThreshold)
	if cfg.UseColors {
		label = contract.GetColorTrendLabel(report.Growth, cfg.RisingThreshold)
	}

	repoLabel := contract.TruncateLabel(result.Repo, GetMaxTableLabelWidth(cfg))
	fmt.Fprintf(w, "🔮 Forecast for %s (bucket: %s, horizon: %d)\n", repoLabel, result.Bucket, result.Horizon)
	fmt.Fprintf(w, "📈 Trend: %s (%.0f%% projected growth, ~%s new stars)\n",
		label, report.Growth*100, fmtFloat(projected))
	if report.Metrics != nil {
		fmt.Fprintf(w, "🎯 Fit: MAE %s, RMSE %s, R² %s over %d buckets\n",
			fmtFloat(report.Metrics.MAE), fmtFloat(report.Metrics.RMSE),
			fmtFloat(report.Metrics.R2), report.Metrics.Samples)
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Date", "Forecast", "Lower", "Upper"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range result.FuturePoints() {
		row := []string{
			schema.FormatBucketDate(p.Date),
			fmtFloat(p.Point),
			fmtFloat(p.Lower),
			fmtFloat(p.Upper),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Forecast completed in %v (%d history buckets fitted)\n", duration, result.History)
	return nil
}
