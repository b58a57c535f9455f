package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/gitpulse/gitpulse/schema"
)

// Default values for configuration.
const (
	DefaultAuthorLimit = 10
	MaxAuthorLimit     = 1000
	DefaultScanDepth   = 2
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateFormat is the calendar-day representation accepted on the CLI.
const DateFormat = "2006-01-02"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// RepositoryRawInput is one repository entry from the YAML config file.
type RepositoryRawInput struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
}

// Config holds the runtime configuration for a gitpulse invocation.
// This struct remains the "final, validated" config.
type Config struct {
	Repos []schema.RepositoryRef

	Filter    schema.DateFilter
	StartDate time.Time // only set for the custom filter
	EndDate   time.Time // only set for the custom filter

	Branch      string
	AuthorEmail string
	AuthorLimit int
	Workers     int

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	ScanDepth int
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Filter     string `mapstructure:"filter"`
	Start      string `mapstructure:"start"`
	End        string `mapstructure:"end"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Workers    int    `mapstructure:"workers"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	DBBackend  string `mapstructure:"db-backend"`
	DBConnect  string `mapstructure:"db-connect"`

	// --- Fields from authorsCmd.Flags() ---
	Author string `mapstructure:"author"`
	Limit  int    `mapstructure:"limit"`

	// --- Fields from branchesCmd.Flags() ---
	Branch string `mapstructure:"branch"`

	// --- Fields from reposCmd scan flags ---
	ScanDepth int `mapstructure:"scan-depth"`

	// --- Repository registry from config file ---
	Repositories []RepositoryRawInput `mapstructure:"repositories"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Repos != nil {
		clone.Repos = make([]schema.RepositoryRef, len(c.Repos))
		copy(clone.Repos, c.Repos)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateFilter(cfg, input); err != nil {
		return err
	}
	processRepositories(cfg, input)
	return nil
}

// validateSimpleInputs processes and validates all non-date fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Branch = strings.TrimSpace(input.Branch)
	cfg.AuthorEmail = strings.ToLower(strings.TrimSpace(input.Author))
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Limit Validation ---
	if input.Limit <= 0 || input.Limit > MaxAuthorLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxAuthorLimit, input.Limit)
	}
	cfg.AuthorLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 4. Backend Validation ---
	cfg.Backend = schema.DatabaseBackend(strings.ToLower(input.DBBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.Backend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql, none", input.DBBackend)
	}
	cfg.DBConnect = input.DBConnect
	if err := ValidateDatabaseConnectionString(cfg.Backend, cfg.DBConnect); err != nil {
		return err
	}

	// --- 5. Scan Depth Validation ---
	cfg.ScanDepth = input.ScanDepth
	if cfg.ScanDepth <= 0 {
		cfg.ScanDepth = DefaultScanDepth
	}

	return nil
}

// processDateFilter validates the named filter and, for the custom filter,
// parses and validates both boundary dates. An unrecognized filter falls
// back to today with a warning rather than erroring out.
func processDateFilter(cfg *Config, input *ConfigRawInput) error {
	filter := schema.DateFilter(strings.ToLower(strings.TrimSpace(input.Filter)))
	if _, ok := schema.ValidDateFilters[filter]; !ok {
		LogWarn("unrecognized date filter, falling back to today", fmt.Errorf("filter %q", input.Filter))
		filter = schema.TodayFilter
	}
	cfg.Filter = filter

	if filter != schema.CustomFilter {
		return nil
	}

	if input.Start == "" || input.End == "" {
		return ErrMissingDateRange
	}

	start, err := time.ParseInLocation(DateFormat, input.Start, time.Local)
	if err != nil {
		return fmt.Errorf("invalid start date '%s'. Expected %s: %w", input.Start, DateFormat, err)
	}
	end, err := time.ParseInLocation(DateFormat, input.End, time.Local)
	if err != nil {
		return fmt.Errorf("invalid end date '%s'. Expected %s: %w", input.End, DateFormat, err)
	}
	if start.After(end) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", input.Start, input.End)
	}

	cfg.StartDate = start
	cfg.EndDate = end
	return nil
}

// processRepositories copies the config-file repository registry into the
// final config, skipping malformed entries. Duplicate paths keep the first
// entry seen.
func processRepositories(cfg *Config, input *ConfigRawInput) {
	seen := make(map[string]struct{})
	for _, raw := range input.Repositories {
		path := strings.TrimSpace(raw.Path)
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}

		name := strings.TrimSpace(raw.Name)
		if name == "" {
			name = schema.RepositoryName(path)
		}
		cfg.Repos = append(cfg.Repos, schema.RepositoryRef{Name: name, Path: path})
	}
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
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
