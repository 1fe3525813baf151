package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// writeCSVResultsForSeries writes the prepared series to CSV.
func writeCSVResultsForSeries(w io.Writer, payload seriesPayload) error {
	header := []string{
		"repo",
		"bucket",
		"date",
		"count",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range payload.Points {
			row := []string{
				payload.Repo,
				string(payload.Bucket),
				schema.FormatBucketDate(p.Date),
				strconv.Itoa(p.Count),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
