package core

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// Chart styling.
const (
	chartWidth  = "1200px"
	chartHeight = "600px"
	lineWidth   = 2
	bandWidth   = 1
)

// RenderForecastChart writes an HTML line chart overlaying the observed
// history, the fitted forecast and its uncertainty band to path.
func RenderForecastChart(result *schema.ForecastResult, history schema.TimeSeries, path string) error {
	line := buildForecastChart(result, history)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	fmt.Fprintf(os.Stderr, "📈 Wrote chart to %s\n", path)
	return nil
}

func buildForecastChart(result *schema.ForecastResult, history schema.TimeSeries) *charts.Line {
	labels := make([]string, len(result.Points))
	forecast := make([]opts.LineData, len(result.Points))
	upper := make([]opts.LineData, len(result.Points))
	lower := make([]opts.LineData, len(result.Points))
	for i, p := range result.Points {
		labels[i] = schema.FormatBucketDate(p.Date)
		forecast[i] = opts.LineData{Value: p.Point}
		upper[i] = opts.LineData{Value: p.Upper}
		lower[i] = opts.LineData{Value: p.Lower}
	}

	// The observed series only covers the fitted history range.
	observed := make([]opts.LineData, len(history))
	for i, p := range history {
		observed[i] = opts.LineData{Value: p.Count}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("Star forecast: %s", result.Repo),
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Star forecast: %s", result.Repo),
			Subtitle: fmt.Sprintf("New stars per %s, %d future buckets", result.Bucket, result.Horizon),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("New stars per %s", result.Bucket)}),
	)
	line.SetXAxis(labels)

	line.AddSeries("Observed", observed,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)
	line.AddSeries("Forecast", forecast,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth, Type: "dashed"}),
	)
	line.AddSeries("Upper", upper,
		charts.WithLineStyleOpts(opts.LineStyle{Width: bandWidth, Type: "dotted"}),
	)
	line.AddSeries("Lower", lower,
		charts.WithLineStyleOpts(opts.LineStyle{Width: bandWidth, Type: "dotted"}),
	)
	return line
}
