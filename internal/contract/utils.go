package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Trend label constants.
const (
	RisingValue    = "Rising"
	GrowingValue   = "Growing"
	FlatValue      = "Flat"
	DecliningValue = "Declining"
)

// Color variables for console output.
var (
	RisingColor    = color.New(color.FgGreen, color.Bold) // risingColor marks growth beyond the rising-star threshold.
	GrowingColor   = color.New(color.FgGreen)             // growingColor marks positive but sub-threshold growth.
	FlatColor      = color.New(color.FgHiBlack)           // flatColor marks a stagnant projection.
	DecliningColor = color.New(color.FgRed)               // decliningColor marks projected decline.
)

// GetPlainTrendLabel returns a plain text label for the projected growth rate.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainTrendLabel(growth, threshold float64) string {
	switch {
	case growth >= threshold:
		return RisingValue
	case growth > 0.01:
		return GrowingValue
	case growth >= -0.01:
		return FlatValue
	default:
		return DecliningValue
	}
}

// GetColorTrendLabel returns a colored text label for console output (table).
// It uses GetPlainTrendLabel to determine the string, then applies the color.
func GetColorTrendLabel(growth, threshold float64) string {
	text := GetPlainTrendLabel(growth, threshold)

	switch text {
	case RisingValue:
		return RisingColor.Sprint(text)
	case GrowingValue:
		return GrowingColor.Sprint(text)
	case FlatValue:
		return FlatColor.Sprint(text)
	default: // "Declining"
		return DecliningColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogStageFatal reports a pipeline error and exits. Debug mode prints the
// full error chain; otherwise only the failing stage and failure class
// appear.
func LogStageFatal(msg string, err error, debug bool) {
	if debug {
		LogFatal(msg, err)
	}
	if stage, ok := StageOf(err); ok {
		_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %s stage failed (%s)\n", msg, stage, FailureClass(err))
		os.Exit(1)
	}
	LogFatal(msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// TruncateLabel truncates a label to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 so there is room for "..." plus at least one rune.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return label
}
