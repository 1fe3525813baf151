package store

import (
	"fmt"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// PrintRunStatus prints run log status information.
func PrintRunStatus(status schema.RunStatus) {
	fmt.Printf("Run Log Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Events Collected: %d\n", status.TotalEvents)
	}
}
