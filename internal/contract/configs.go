package contract

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ckscope/ckscope/schema"
)

// Default values for configuration.
const (
	DefaultLanguage   = "Java"
	DefaultPages      = 10
	DefaultPerPage    = 100
	DefaultPrecision  = 2
	DefaultMinClasses = 3
	DefaultDelay      = "2s"
	DefaultSettle     = "2s"

	// SearchResultWindow is the hosting API's hard cap on paginated search
	// results. Requests beyond it return errors, so pages x per-page must
	// stay inside the window.
	SearchResultWindow = 1000

	// MaxPerPage is the hosting API's hard cap on the per_page parameter.
	MaxPerPage = 100
)

// Default file locations, relative to the working directory.
const (
	DefaultCatalogFile = "catalog.csv"
	DefaultResultsFile = "summaries.csv"
	DefaultReportFile  = "report.md"
	DefaultCKJar       = "ck.jar"
	DefaultOutputRoot  = "ck-results"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the pipeline.
// This struct remains the "final, validated" config.
type Config struct {
	// Catalog fetch
	Language    string
	Pages       int
	PerPage     int
	Token       string
	CatalogFile string

	// Single-repository analysis
	RepoArg     string
	CKJarPath   string
	ScratchRoot string
	OutputRoot  string
	SettleWait  time.Duration

	// Batch orchestration
	ResultsFile string
	StartOffset int
	MaxRepos    int
	Delay       time.Duration

	// Statistical analysis
	ReportFile string
	MinClasses int

	// Output
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	// Results store
	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	CKJar          string `mapstructure:"ck-jar"`
	ScratchDir     string `mapstructure:"scratch-dir"`
	OutputDir      string `mapstructure:"output-dir"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Catalog        string `mapstructure:"catalog"`
	Results        string `mapstructure:"results"`
	Token          string `mapstructure:"token"`
	Delay          string `mapstructure:"delay"`
	Settle         string `mapstructure:"settle"`

	// --- Fields from fetchCmd.Flags() ---
	Language string `mapstructure:"language"`
	Pages    int    `mapstructure:"pages"`
	PerPage  int    `mapstructure:"per-page"`

	// --- Fields from batchCmd.Flags() ---
	StartOffset int `mapstructure:"start-offset"`
	MaxRepos    int `mapstructure:"max-repos"`

	// --- Fields from statsCmd.Flags() ---
	Report     string `mapstructure:"report"`
	MinClasses int    `mapstructure:"min-classes"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateFetchInputs(cfg, input); err != nil {
		return err
	}
	if err := validateAnalysisInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBatchInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStatsInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// Clone returns a copy of the Config struct. The MCP handlers mutate the
// copy per request without touching the shared base config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// RevalidateFetchWindow re-checks the pagination bounds on an already
// validated config. The MCP server calls it after applying per-request
// overrides.
func RevalidateFetchWindow(cfg *Config) error {
	if cfg.Pages < 1 {
		return fmt.Errorf("pages must be at least 1 (received %d)", cfg.Pages)
	}
	if cfg.PerPage < 1 || cfg.PerPage > MaxPerPage {
		return fmt.Errorf("per-page must be between 1 and %d (received %d)", MaxPerPage, cfg.PerPage)
	}
	if cfg.Pages*cfg.PerPage > SearchResultWindow {
		return fmt.Errorf("pages x per-page cannot exceed the %d-result search window (received %d)", SearchResultWindow, cfg.Pages*cfg.PerPage)
	}
	return nil
}

// validateFetchInputs processes the catalog fetch fields.
func validateFetchInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Language = strings.TrimSpace(input.Language)
	if cfg.Language == "" {
		return fmt.Errorf("language cannot be empty")
	}

	cfg.Pages = input.Pages
	cfg.PerPage = input.PerPage
	if err := RevalidateFetchWindow(cfg); err != nil {
		return err
	}

	// An explicit flag wins; otherwise fall back to the conventional
	// environment variable so unattended runs keep their quota.
	cfg.Token = strings.TrimSpace(input.Token)
	if cfg.Token == "" {
		cfg.Token = strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
	}

	cfg.CatalogFile = strings.TrimSpace(input.Catalog)
	if cfg.CatalogFile == "" {
		return fmt.Errorf("catalog path cannot be empty")
	}

	return nil
}

// validateAnalysisInputs processes the single-repository analysis fields.
func validateAnalysisInputs(cfg *Config, input *ConfigRawInput) error {
	// Empty is fine here; only the analyze command takes a positional
	// repository and cobra enforces its presence.
	cfg.RepoArg = strings.TrimSpace(input.RepoArg)

	cfg.CKJarPath = strings.TrimSpace(input.CKJar)
	if cfg.CKJarPath == "" {
		return fmt.Errorf("ck-jar path cannot be empty")
	}

	cfg.ScratchRoot = strings.TrimSpace(input.ScratchDir)
	if cfg.ScratchRoot == "" {
		cfg.ScratchRoot = os.TempDir()
	}

	cfg.OutputRoot = strings.TrimSpace(input.OutputDir)
	if cfg.OutputRoot == "" {
		return fmt.Errorf("output-dir cannot be empty")
	}

	settle, err := ParseDelay(input.Settle)
	if err != nil {
		return fmt.Errorf("invalid settle: %w", err)
	}
	if settle <= 0 {
		return fmt.Errorf("settle must be positive (received %s)", settle)
	}
	cfg.SettleWait = settle

	return nil
}

// validateBatchInputs processes the batch orchestration fields.
func validateBatchInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ResultsFile = strings.TrimSpace(input.Results)
	if cfg.ResultsFile == "" {
		return fmt.Errorf("results path cannot be empty")
	}

	if input.StartOffset < 0 {
		return fmt.Errorf("start-offset cannot be negative (received %d)", input.StartOffset)
	}
	cfg.StartOffset = input.StartOffset

	if input.MaxRepos < 0 {
		return fmt.Errorf("max-repos cannot be negative (received %d)", input.MaxRepos)
	}
	cfg.MaxRepos = input.MaxRepos

	delay, err := ParseDelay(input.Delay)
	if err != nil {
		return fmt.Errorf("invalid delay: %w", err)
	}
	if delay < 0 {
		return fmt.Errorf("delay cannot be negative (received %s)", delay)
	}
	cfg.Delay = delay

	return nil
}

// validateStatsInputs processes the statistical analysis fields.
func validateStatsInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ReportFile = strings.TrimSpace(input.Report)

	if input.MinClasses < 1 {
		return fmt.Errorf("min-classes must be at least 1 (received %d)", input.MinClasses)
	}
	cfg.MinClasses = input.MinClasses

	return nil
}

// validateOutputInputs processes presentation fields.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// validateStoreInputs processes the results store fields.
func validateStoreInputs(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(strings.TrimSpace(input.StoreBackend))
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.StoreBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}

	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
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
