package contract

import (
	"path/filepath"
	"testing"

	"github.com/mtichikawa/github-trend-forecaster/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation.
func validInput(t *testing.T) *ConfigRawInput {
	t.Helper()
	return &ConfigRawInput{
		DataDir:         filepath.Join(t.TempDir(), "data"),
		Bucket:          "day",
		Horizon:         90,
		RisingThreshold: 0.25,
		Output:          "text",
		Precision:       1,
		MaxPages:        400,
		PerPage:         100,
		RunBackend:      "none",
		Color:           "yes",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := validInput(t)

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.DayBucket, cfg.Bucket)
	assert.Equal(t, 90, cfg.Horizon)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.RunBackend)
	assert.True(t, cfg.UseColors)
	assert.DirExists(t, cfg.DataDir)
}

func TestProcessAndValidateRejectsBadBucket(t *testing.T) {
	cfg := &Config{}
	input := validInput(t)
	input.Bucket = "month"

	err := ProcessAndValidate(cfg, input)
	assert.ErrorContains(t, err, "invalid bucket")
}

func TestProcessAndValidateRejectsBadHorizon(t *testing.T) {
	for _, horizon := range []int{0, -5, MaxHorizon + 1} {
		cfg := &Config{}
		input := validInput(t)
		input.Horizon = horizon

		err := ProcessAndValidate(cfg, input)
		assert.ErrorContains(t, err, "invalid horizon", "horizon %d", horizon)
	}
}

func TestProcessAndValidateRejectsBadOutput(t *testing.T) {
	cfg := &Config{}
	input := validInput(t)
	input.Output = "xml"

	err := ProcessAndValidate(cfg, input)
	assert.ErrorContains(t, err, "invalid output")
}

func TestProcessAndValidateClampsPrecision(t *testing.T) {
	cfg := &Config{}
	input := validInput(t)
	input.Precision = 9

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 4, cfg.Precision)
}

func TestProcessAndValidatePerPageCeiling(t *testing.T) {
	cfg := &Config{}
	input := validInput(t)
	input.PerPage = 250

	err := ProcessAndValidate(cfg, input)
	assert.ErrorContains(t, err, "per page")
}

func TestCloneLeavesOriginalUntouched(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(t)))

	clone := cfg.Clone()
	clone.MaxPages = 10
	clone.Bucket = schema.WeekBucket
	clone.Horizon = 7
	clone.RisingThreshold = 0.9

	assert.Equal(t, 400, cfg.MaxPages)
	assert.Equal(t, schema.DayBucket, cfg.Bucket)
	assert.Equal(t, 90, cfg.Horizon)
	assert.Equal(t, 0.25, cfg.RisingThreshold)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{schema.SQLiteBackend, "", false},
		{schema.NoneBackend, "", false},
		{schema.MySQLBackend, "", true},
		{schema.MySQLBackend, "root:pw@tcp(localhost:3306)/trendcast", false},
		{schema.MySQLBackend, "root:pw@localhost/trendcast", true},
		{schema.PostgreSQLBackend, "", true},
		{schema.PostgreSQLBackend, "host=localhost port=5432 user=postgres dbname=trendcast", false},
		{schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
		if tt.wantErr {
			assert.Error(t, err, "%s %q", tt.backend, tt.connStr)
		} else {
			assert.NoError(t, err, "%s %q", tt.backend, tt.connStr)
		}
	}
}

func TestResolveTokenFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_from_env")
	t.Setenv("GH_TOKEN", "")

	cfg := &Config{}
	input := validInput(t)
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "ghp_from_env", cfg.Token)
}

func TestResolveTokenExplicitWins(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_from_env")

	cfg := &Config{}
	input := validInput(t)
	input.Token = "ghp_explicit"
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "ghp_explicit", cfg.Token)
}
