// Package core has core logic for collection, preparation and forecasting.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/internal/outwriter"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// ExecuteCollect fetches and persists star history for each repository.
// It serves as the main entry point for the 'collect' command.
func ExecuteCollect(ctx context.Context, cfg *contract.Config, source contract.EventSource, mgr contract.StoreManager, refs []string) error {
	for _, ref := range refs {
		owner, repo, err := schema.ParseRepoRef(ref)
		if err != nil {
			return contract.WrapStage(contract.StageCollection, err)
		}

		logCollectHeader(owner, repo, cfg.Token != "")
		start := time.Now()
		ds, err := CollectDataset(ctx, cfg, source, mgr, owner, repo)
		if err != nil {
			return contract.WrapStage(contract.StageCollection, err)
		}
		logCollectResult(ds, time.Since(start))
	}
	return nil
}

// EnsureDataset loads the dataset for ref and collects it first when it has
// never been collected. Any other load failure propagates unmodified.
func EnsureDataset(ctx context.Context, cfg *contract.Config, source contract.EventSource, mgr contract.StoreManager, ref string) error {
	owner, repo, err := schema.ParseRepoRef(ref)
	if err != nil {
		return contract.WrapStage(contract.StageCollection, err)
	}

	_, err = mgr.GetDatasetStore().Load(schema.DatasetKey(owner, repo))
	if err == nil {
		return nil
	}
	if !errors.Is(err, contract.ErrNotFound) {
		return contract.WrapStage(contract.StagePreparation, err)
	}
	return ExecuteCollect(ctx, cfg, source, mgr, []string{ref})
}

// GetSeriesResults loads a stored dataset and prepares its bucketed series.
func GetSeriesResults(cfg *contract.Config, mgr contract.StoreManager, ref string) (*schema.Dataset, schema.TimeSeries, error) {
	owner, repo, err := schema.ParseRepoRef(ref)
	if err != nil {
		return nil, nil, contract.WrapStage(contract.StagePreparation, err)
	}

	ds, err := mgr.GetDatasetStore().Load(schema.DatasetKey(owner, repo))
	if err != nil {
		return nil, nil, contract.WrapStage(contract.StagePreparation, err)
	}

	series, err := PrepareSeries(ds, cfg.Bucket)
	if err != nil {
		return nil, nil, contract.WrapStage(contract.StagePreparation, err)
	}
	return ds, series, nil
}

// ExecuteSeries loads a stored dataset, prepares the bucketed series and
// prints it. It serves as the main entry point for the 'series' command.
func ExecuteSeries(_ context.Context, cfg *contract.Config, mgr contract.StoreManager, ref string) error {
	start := time.Now()

	ds, series, err := GetSeriesResults(cfg, mgr, ref)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	return outwriter.PrintSeries(ds, series, cfg, duration)
}

// GetForecastResults runs the full pipeline for one stored dataset: prepare,
// train, predict, evaluate and assemble the report.
func GetForecastResults(cfg *contract.Config, mgr contract.StoreManager, ref string) (*schema.ForecastReport, schema.TimeSeries, error) {
	ds, series, err := GetSeriesResults(cfg, mgr, ref)
	if err != nil {
		return nil, nil, err
	}

	report, err := runForecast(ds.Owner+"/"+ds.Repo, series, cfg)
	if err != nil {
		return nil, nil, contract.WrapStage(contract.StageForecasting, err)
	}
	return report, series, nil
}

// ExecuteForecast forecasts a stored dataset and prints the report, with an
// optional HTML chart. It serves as the main entry point for the 'forecast'
// command.
func ExecuteForecast(_ context.Context, cfg *contract.Config, mgr contract.StoreManager, ref string) error {
	start := time.Now()

	report, series, err := GetForecastResults(cfg, mgr, ref)
	if err != nil {
		return err
	}

	if cfg.PlotFile != "" {
		if err := RenderForecastChart(report.Result, series, cfg.PlotFile); err != nil {
			return contract.WrapStage(contract.StageVisualization, err)
		}
	}

	duration := time.Since(start)
	return outwriter.PrintForecast(report, cfg, duration)
}

// GetDatasetEntries summarizes every stored dataset for listing.
func GetDatasetEntries(mgr contract.StoreManager) ([]outwriter.DatasetEntry, error) {
	datasets := mgr.GetDatasetStore()
	keys, err := datasets.List()
	if err != nil {
		return nil, err
	}

	entries := make([]outwriter.DatasetEntry, 0, len(keys))
	for _, key := range keys {
		ds, err := datasets.Load(key)
		if err != nil {
			return nil, err
		}
		entry := outwriter.DatasetEntry{
			Key:         key,
			Events:      len(ds.Events),
			CollectedAt: ds.CollectedAt.Format("2006-01-02 15:04:05"),
		}
		if ds.Stats != nil {
			entry.Stars = ds.Stats.Stars
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ExecuteDatasetList prints a summary of all stored datasets. It serves as
// the main entry point for the 'datasets list' command.
func ExecuteDatasetList(cfg *contract.Config, mgr contract.StoreManager) error {
	entries, err := GetDatasetEntries(mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintDatasetList(entries, cfg)
}

// runForecast trains a model on the series and assembles the full report.
func runForecast(repoKey string, series schema.TimeSeries, cfg *contract.Config) (*schema.ForecastReport, error) {
	model := NewForecaster(repoKey, cfg.Bucket)
	if err := model.Train(series); err != nil {
		return nil, err
	}

	result, err := model.Predict(cfg.Horizon)
	if err != nil {
		return nil, err
	}

	metrics, err := model.Evaluate()
	if err != nil {
		return nil, err
	}

	rising, growth := DetectRisingStar(result, series, cfg.RisingThreshold)
	return &schema.ForecastReport{
		Result:  result,
		Metrics: metrics,
		Rising:  rising,
		Growth:  growth,
	}, nil
}
