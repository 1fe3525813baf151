// main is the entry point for the trendcast CLI.
package main

import (
	"fmt"
	"os"

	"github.com/mtichikawa/github-trend-forecaster/cmd"
	"github.com/mtichikawa/github-trend-forecaster/internal/store"
)

func main() {
	err := cmd.Execute()
	store.CloseStores()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
