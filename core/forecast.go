package core

import (
	"fmt"
	"math"
	"time"

	fc "github.com/aouyang1/go-forecaster"
	"github.com/aouyang1/go-forecaster/timedataset"

	"github.com/mtichikawa/github-trend-forecaster/internal/contract"
	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// modelState tracks whether the model has been fitted.
type modelState int

const (
	stateUntrained modelState = iota
	stateTrained
)

// Forecaster fits a model on a prepared star series and projects future
// buckets. It moves from untrained to trained exactly once per Train call;
// Predict and Evaluate reject an untrained model.
type Forecaster struct {
	state   modelState
	model   *fc.Forecaster
	bucket  schema.Bucket
	history schema.TimeSeries
	repo    string
}

// NewForecaster creates an untrained forecaster for the given repository
// key and bucket.
func NewForecaster(repo string, bucket schema.Bucket) *Forecaster {
	return &Forecaster{
		state:  stateUntrained,
		bucket: bucket,
		repo:   repo,
	}
}

// Trained reports whether the model has been fitted.
func (f *Forecaster) Trained() bool {
	return f.state == stateTrained
}

// Train fits the model on the prepared series. The series must have at
// least two points; fewer is an insufficient-data error and leaves the
// model untrained.
func (f *Forecaster) Train(series schema.TimeSeries) error {
	if len(series) < contract.MinTrainingPoints {
		return fmt.Errorf("%w: need at least %d points to fit, got %d",
			contract.ErrInsufficientData, contract.MinTrainingPoints, len(series))
	}

	t := make([]time.Time, len(series))
	y := make([]float64, len(series))
	for i, p := range series {
		t[i] = p.Date
		y[i] = float64(p.Count)
	}

	td, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return fmt.Errorf("%w: failed to build training dataset: %v", contract.ErrForecast, err)
	}

	model, err := fc.New(nil)
	if err != nil {
		return fmt.Errorf("%w: failed to initialize model: %v", contract.ErrForecast, err)
	}
	if err := model.Fit(td.T, td.Y); err != nil {
		return fmt.Errorf("%w: model fit failed: %v", contract.ErrForecast, err)
	}

	f.model = model
	f.history = series
	f.state = stateTrained
	return nil
}

// Predict projects horizon future buckets past the end of the fitted
// history. The result covers the fitted range plus the horizon, with the
// first future point exactly one bucket after the last historical date.
func (f *Forecaster) Predict(horizon int) (*schema.ForecastResult, error) {
	if f.state != stateTrained {
		return nil, fmt.Errorf("%w: call Train before Predict", contract.ErrUntrained)
	}
	if horizon < 1 || horizon > contract.MaxHorizon {
		return nil, fmt.Errorf("%w: horizon must be between 1 and %d, got %d",
			contract.ErrForecast, contract.MaxHorizon, horizon)
	}

	times := append(SeriesDates(f.history), FutureDates(f.history, f.bucket, horizon)...)
	res, err := f.model.Predict(times)
	if err != nil {
		return nil, fmt.Errorf("%w: prediction failed: %v", contract.ErrForecast, err)
	}
	if len(res.T) != len(times) {
		return nil, fmt.Errorf("%w: model returned %d points for %d requested times",
			contract.ErrForecast, len(res.T), len(times))
	}

	points := make([]schema.ForecastPoint, len(times))
	for i := range times {
		points[i] = clampPoint(times[i], res.Forecast[i], res.Lower[i], res.Upper[i])
	}

	return &schema.ForecastResult{
		Repo:    f.repo,
		Bucket:  f.bucket,
		History: len(f.history),
		Horizon: horizon,
		Points:  points,
	}, nil
}

// Evaluate scores the fitted model against its own training history and
// returns in-sample accuracy metrics.
func (f *Forecaster) Evaluate() (*schema.EvalMetrics, error) {
	if f.state != stateTrained {
		return nil, fmt.Errorf("%w: call Train before Evaluate", contract.ErrUntrained)
	}

	res, err := f.model.Predict(SeriesDates(f.history))
	if err != nil {
		return nil, fmt.Errorf("%w: evaluation prediction failed: %v", contract.ErrForecast, err)
	}
	if len(res.Forecast) != len(f.history) {
		return nil, fmt.Errorf("%w: model returned %d points for %d history buckets",
			contract.ErrForecast, len(res.Forecast), len(f.history))
	}

	var absSum, sqSum, actualSum float64
	for i, p := range f.history {
		diff := res.Forecast[i] - float64(p.Count)
		absSum += math.Abs(diff)
		sqSum += diff * diff
		actualSum += float64(p.Count)
	}
	n := float64(len(f.history))
	mean := actualSum / n

	var totSum float64
	for _, p := range f.history {
		dev := float64(p.Count) - mean
		totSum += dev * dev
	}

	r2 := 0.0
	if totSum > 0 {
		r2 = 1 - sqSum/totSum
	} else if sqSum == 0 {
		// A constant series fitted exactly.
		r2 = 1
	}

	return &schema.EvalMetrics{
		MAE:     absSum / n,
		RMSE:    math.Sqrt(sqSum / n),
		R2:      r2,
		Samples: len(f.history),
	}, nil
}

// DetectRisingStar reports whether the forecast projects growth at or
// above threshold. Growth is the sum of projected new stars across the
// horizon relative to the historical baseline (total stars observed in
// the fitted history, floored at one to keep brand-new repos meaningful).
func DetectRisingStar(result *schema.ForecastResult, history schema.TimeSeries, threshold float64) (bool, float64) {
	var projected float64
	for _, p := range result.FuturePoints() {
		projected += p.Point
	}

	baseline := float64(history.Total())
	if baseline < 1 {
		baseline = 1
	}

	growth := projected / baseline
	return growth >= threshold, growth
}

// clampPoint enforces Lower <= Point <= Upper and floors everything at
// zero, since a bucket cannot lose stars.
func clampPoint(date time.Time, point, lower, upper float64) schema.ForecastPoint {
	point = math.Max(0, point)
	lower = math.Max(0, math.Min(lower, point))
	upper = math.Max(upper, point)
	return schema.ForecastPoint{
		Date:  date,
		Point: point,
		Lower: lower,
		Upper: upper,
	}
}
