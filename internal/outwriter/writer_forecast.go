package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// writeCSVResultsForForecast writes every forecast point to CSV, with a
// segment column separating fitted history from future buckets.
func writeCSVResultsForForecast(w io.Writer, report *schema.ForecastReport, fmtFloat func(float64) string) error {
	result := report.Result
	header := []string{
		"repo",
		"bucket",
		"date",
		"point",
		"lower",
		"upper",
		"segment",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, p := range result.Points {
			segment := "history"
			if i >= result.History {
				segment = "forecast"
			}
			row := []string{
				result.Repo,
				string(result.Bucket),
				schema.FormatBucketDate(p.Date),
				fmtFloat(p.Point),
				fmtFloat(p.Lower),
				fmtFloat(p.Upper),
				segment,
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
