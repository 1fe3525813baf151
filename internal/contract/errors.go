package contract

import (
	"errors"
	"fmt"
)

// Error taxonomy for the pipeline. Each sentinel marks a failure class that
// callers match with errors.Is; wrapped causes stay reachable via errors.As.
var (
	// ErrNotFound marks a missing repository or dataset key.
	ErrNotFound = errors.New("not found")

	// ErrAuth marks rejected or missing credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrTransient marks a retryable network or server fault that survived
	// all retry attempts inside the API client.
	ErrTransient = errors.New("transient failure")

	// ErrStorage marks a local persistence failure.
	ErrStorage = errors.New("storage failure")

	// ErrInsufficientData marks a series with fewer points than the
	// forecasting minimum, including the empty series.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrForecast marks a failure inside the forecasting capability.
	ErrForecast = errors.New("forecast failure")

	// ErrUntrained marks a Predict call before Train.
	ErrUntrained = errors.New("model not trained")
)

// Stage identifies the pipeline stage where an error surfaced. The top-level
// command reports it so users see which step failed without a stack trace.
type Stage string

// All pipeline stages.
const (
	StageCollection    Stage = "collection"
	StagePreparation   Stage = "preparation"
	StageForecasting   Stage = "forecasting"
	StageVisualization Stage = "visualization"
)

// StageError annotates an error with the pipeline stage it escaped from.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying error for errors.Is and errors.As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// WrapStage annotates err with the given stage. The innermost stage wins:
// an error already carrying a stage is returned unchanged so the first
// failing step is the one reported.
func WrapStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}

// StageOf extracts the failing stage from an error chain.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// FailureClass reduces err to the taxonomy sentinel it carries, so the
// default error report names the failure kind without the wrapped detail.
// Errors outside the taxonomy fall back to their full message.
func FailureClass(err error) string {
	sentinels := []error{
		ErrNotFound,
		ErrAuth,
		ErrTransient,
		ErrStorage,
		ErrInsufficientData,
		ErrForecast,
		ErrUntrained,
	}
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
