package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// DatasetEntry is one row of the stored dataset listing.
type DatasetEntry struct {
	Key         string `json:"key"`
	Events      int    `json:"events"`
	Stars       int    `json:"stars,omitempty"`
	CollectedAt string `json:"collected_at"`
}

// PrintDatasetList outputs the stored dataset listing, dispatching based
// on the output format configured.
func PrintDatasetList(entries []DatasetEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, entries)
		}, "Wrote JSON dataset list")
	default:
		return writeDatasetTable(os.Stdout, entries, cfg)
	}
}

// writeDatasetTable writes the dataset listing as a table.
func writeDatasetTable(w io.Writer, entries []DatasetEntry, cfg *contract.Config) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No datasets collected yet.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dataset", "Events", "Stars", "Collected"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTableLabelWidth(cfg)
	var data [][]string
	for _, e := range entries {
		row := []string{
			contract.TruncateLabel(e.Key, maxWidth),
			strconv.Itoa(e.Events),
			strconv.Itoa(e.Stars),
			e.CollectedAt,
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
