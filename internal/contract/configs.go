package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mtichikawa/github-trend-forecaster/schema"
)

// Default values for configuration.
const (
	DefaultHorizon         = 90   // future buckets to forecast
	DefaultMaxPages        = 400  // pagination ceiling (40k events at 100/page)
	DefaultPerPage         = 100  // API page size
	DefaultPrecision       = 1    // decimal precision for numeric columns
	DefaultRisingThreshold = 0.25 // projected growth over baseline that flags a rising star
	MinTrainingPoints      = 2    // forecasting minimum; fewer points is InsufficientData
	MaxHorizon             = 3650 // sanity ceiling on forecast length
)

// API client retry policy. Transient faults are retried inside the client
// only; every other error kind propagates unmodified.
const (
	MaxRetryAttempts = 3
	RetryBaseDelay   = 2 * time.Second
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the pipeline.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir string // Directory holding one dataset file per repository
	Token   string // Optional API token raising the platform rate limit
	BaseURL string // API base URL override (GitHub Enterprise, tests)

	MaxPages int
	PerPage  int

	Bucket          schema.Bucket
	Horizon         int
	RisingThreshold float64

	Output     schema.OutputMode
	OutputFile string
	PlotFile   string // HTML chart destination; empty disables the chart
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
	Debug     bool // Print full error chains instead of stage summaries
}

// Clone returns a copy of the Config struct. Config carries no reference
// fields, so a value copy is a full copy; callers can mutate the clone
// without affecting the original.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	DataDir         string  `mapstructure:"data-dir"`
	Token           string  `mapstructure:"token"`
	BaseURL         string  `mapstructure:"base-url"`
	MaxPages        int     `mapstructure:"max-pages"`
	PerPage         int     `mapstructure:"per-page"`
	Bucket          string  `mapstructure:"bucket"`
	Horizon         int     `mapstructure:"horizon"`
	RisingThreshold float64 `mapstructure:"rising-threshold"`
	Output          string  `mapstructure:"output"`
	OutputFile      string  `mapstructure:"output-file"`
	PlotFile        string  `mapstructure:"plot"`
	Precision       int     `mapstructure:"precision"`
	Width           int     `mapstructure:"width"`
	RunBackend      string  `mapstructure:"run-backend"`
	RunDBConnect    string  `mapstructure:"run-db-connect"`
	Color           string  `mapstructure:"color"`
	Debug           bool    `mapstructure:"debug"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := resolveDataDir(cfg, input); err != nil {
		return err
	}
	resolveToken(cfg, input)
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.PlotFile = input.PlotFile
	cfg.BaseURL = input.BaseURL
	cfg.Debug = input.Debug
	cfg.Width = input.Width

	cfg.Bucket = schema.Bucket(strings.ToLower(input.Bucket))
	if _, ok := schema.ValidBuckets[cfg.Bucket]; !ok {
		return fmt.Errorf("invalid bucket '%s'. must be day or week", input.Bucket)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output '%s'. must be text, csv, json or parquet", input.Output)
	}

	if input.Horizon < 1 || input.Horizon > MaxHorizon {
		return fmt.Errorf("invalid horizon %d. must be between 1 and %d", input.Horizon, MaxHorizon)
	}
	cfg.Horizon = input.Horizon

	if input.RisingThreshold < 0 {
		return fmt.Errorf("invalid rising threshold %g. must be >= 0", input.RisingThreshold)
	}
	cfg.RisingThreshold = input.RisingThreshold

	if input.MaxPages < 1 {
		return fmt.Errorf("invalid max pages %d. must be >= 1", input.MaxPages)
	}
	cfg.MaxPages = input.MaxPages

	if input.PerPage < 1 || input.PerPage > 100 {
		return fmt.Errorf("invalid per page %d. the API accepts 1 to 100", input.PerPage)
	}
	cfg.PerPage = input.PerPage

	cfg.Precision = input.Precision
	if cfg.Precision < 0 {
		cfg.Precision = 0
	}
	if cfg.Precision > 4 {
		cfg.Precision = 4
	}

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = useColors

	return nil
}

// validateBackendConfig validates the run log backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if _, ok := schema.ValidRunBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	return ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// resolveDataDir resolves and creates the dataset directory.
func resolveDataDir(cfg *Config, input *ConfigRawInput) error {
	dir := input.DataDir
	if dir == "" {
		dir = DefaultDataDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create data directory %q: %w", dir, err)
	}
	cfg.DataDir = dir
	return nil
}

// resolveToken picks the API token from config or the conventional env vars.
func resolveToken(cfg *Config, input *ConfigRawInput) {
	if input.Token != "" {
		cfg.Token = input.Token
		return
	}
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		cfg.Token = t
		return
	}
	cfg.Token = os.Getenv("GH_TOKEN")
}

// DefaultDataDir returns the default directory for dataset files.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".trendcast", "data")
	}
	return filepath.Join(homeDir, ".trendcast", "data")
}

// GetRunDBFilePath returns the path to the SQLite DB file for run log storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".trendcast_runs.db"
	}
	return filepath.Join(homeDir, ".trendcast_runs.db")
}
