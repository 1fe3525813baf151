package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainTrendLabel(t *testing.T) {
	const threshold = 0.25

	tests := []struct {
		growth float64
		want   string
	}{
		{0.40, RisingValue},
		{0.25, RisingValue},
		{0.10, GrowingValue},
		{0.011, GrowingValue},
		{0.0, FlatValue},
		{-0.005, FlatValue},
		{-0.20, DecliningValue},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPlainTrendLabel(tt.growth, threshold), "growth %g", tt.growth)
	}
}

func TestGetColorTrendLabelContainsText(t *testing.T) {
	// Colored output must still contain the plain label for grepability.
	assert.Contains(t, GetColorTrendLabel(0.5, 0.25), RisingValue)
	assert.Contains(t, GetColorTrendLabel(-0.5, 0.25), DecliningValue)
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "true", "1", "YES", "True"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got, "input %q", s)
	}
	for _, s := range []string{"no", "false", "0", "NO"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got, "input %q", s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", TruncateLabel("short", 10))
	assert.Equal(t, "...run", TruncateLabel("a-very-long-run", 6))
	// Width too small to hold the ellipsis leaves the label untouched.
	assert.Equal(t, "abcdef", TruncateLabel("abcdef", 3))
}
