// =============================================================================
// smartpick - Configuration Module
// =============================================================================
//
// This module loads the main application configuration and the order-export
// profiles.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): directories, logging, outputs, master source,
//      multiple-quantity allow-list and JAN display overrides
//   2. Profiles (configs/*.yaml): one per order-export layout (which files,
//      how to read them, which header names carry which order field)
//
// LOADING ORDER:
//   built-in defaults → config.yaml → .env / .env.local → SMARTPICK_* variables
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smartpick/picklist/internal/picking"
)

// ErrNoProfiles is returned when the profiles directory holds no profile.
var ErrNoProfiles = errors.New("no order profiles found")

// Output formats.
const (
	FormatXLSX = "xlsx"
	FormatXML  = "xml"
)

// Master sources.
const (
	SourceXLSX   = "xlsx"
	SourceCSV    = "csv"
	SourceSheets = "sheets"
	SourceGCS    = "gcs"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for order exports. Default: "./input"
	InputDir string `yaml:"input_dir" env:"INPUT_DIR"`

	// OutputDir receives picking lists, error logs and the run summary.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`

	// InputArchiveDir receives order exports after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" env:"INPUT_ARCHIVE_DIR"`

	// OutputArchiveDir receives a copy of every generated output.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir" env:"OUTPUT_ARCHIVE_DIR"`

	// ConfigsDir holds the order-export profiles. Default: "./configs"
	ConfigsDir string `yaml:"configs_dir" env:"CONFIGS_DIR"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	Log LogSettings `yaml:"log" envPrefix:"LOG_"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFormats lists the documents written per order file.
	// Valid values: "xlsx", "xml". Default: ["xlsx"]
	OutputFormats []string `yaml:"output_formats" env:"OUTPUT_FORMATS" envSeparator:","`

	// OutputNameFormat names output files, without extension.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {profile}   - Profile code
	//   {source}    - Input file name without extension
	// Default: "picking_{source}_{timestamp}"
	OutputNameFormat string `yaml:"output_name_format" env:"OUTPUT_NAME_FORMAT"`

	// SortByName orders picking rows by product name (Japanese collation)
	// instead of first-seen order. Default: true
	SortByName bool `yaml:"sort_by_name" env:"SORT_BY_NAME"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of order files processed at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" env:"MAX_CONCURRENCY"`

	// ContinueOnError writes outputs even when validation finds errors.
	// Default: true
	ContinueOnError bool `yaml:"continue_on_error" env:"CONTINUE_ON_ERROR"`

	// =========================================================================
	// PICKING SETTINGS
	// =========================================================================

	Master MasterConfig `yaml:"master" envPrefix:"MASTER_"`

	// SelectableSKUs are product SKUs judged by unit count on the
	// multiple-quantity list. Omitted: the built-in list.
	SelectableSKUs []string `yaml:"selectable_skus" env:"SELECTABLE_SKUS" envSeparator:","`

	// JANDisplayOverrides replaces the value shortened for display.
	// Omitted: the built-in table.
	JANDisplayOverrides map[string]string `yaml:"jan_display_overrides"`
}

// LogSettings configures the zap logger.
type LogSettings struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
	Output string `yaml:"output" env:"OUTPUT"`
}

// =============================================================================
// MASTER SOURCE STRUCTURE
// =============================================================================

// MasterConfig says where the product master table comes from.
type MasterConfig struct {
	// Source is one of "xlsx", "csv", "sheets", "gcs". Default: "xlsx"
	Source string `yaml:"source" env:"SOURCE"`

	// Path is the local file for "xlsx" and "csv".
	Path string `yaml:"path" env:"PATH"`

	// Sheet selects the worksheet ("xlsx") or the A1 range ("sheets").
	// Empty means the first sheet.
	Sheet string `yaml:"sheet" env:"SHEET"`

	// Encoding of a "csv" master, or of a CSV object in GCS.
	Encoding string `yaml:"encoding" env:"ENCODING"`

	// SpreadsheetID, APIKey and CredentialsFile configure "sheets".
	SpreadsheetID   string `yaml:"spreadsheet_id" env:"SPREADSHEET_ID"`
	APIKey          string `yaml:"api_key" env:"API_KEY"`
	CredentialsFile string `yaml:"credentials_file" env:"CREDENTIALS_FILE"`

	// Bucket and Object configure "gcs". The object extension decides
	// between XLSX and CSV decoding.
	Bucket string `yaml:"bucket" env:"BUCKET"`
	Object string `yaml:"object" env:"OBJECT"`

	// Columns overrides the built-in column layout per field.
	Columns []ColumnOverride `yaml:"columns"`
}

// ColumnOverride changes how one master field is located. Unset members
// keep the built-in value.
type ColumnOverride struct {
	Field      string  `yaml:"field"`
	Label      *string `yaml:"label"`
	Fallback   *int    `yaml:"fallback"`
	PreferLast *bool   `yaml:"prefer_last"`
}

// ColumnSpec returns the built-in master layout with the overrides applied.
func (m MasterConfig) ColumnSpec() picking.ColumnSpec {
	base := picking.DefaultColumnSpec()
	if len(m.Columns) == 0 {
		return base
	}

	rules := make([]picking.ColumnRule, 0, len(m.Columns))
	for _, o := range m.Columns {
		rule := picking.ColumnRule{Field: picking.Field(o.Field)}
		for _, r := range base {
			if r.Field == rule.Field {
				rule = r
				break
			}
		}
		if o.Label != nil {
			rule.Label = *o.Label
		}
		if o.Fallback != nil {
			rule.Fallback = *o.Fallback
		}
		if o.PreferLast != nil {
			rule.PreferLast = *o.PreferLast
		}
		rules = append(rules, rule)
	}
	return base.WithOverrides(rules...)
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the configuration used for every key the file omits.
func Default() *MainConfig {
	return &MainConfig{
		InputDir:         "./input",
		OutputDir:        "./output",
		InputArchiveDir:  "./input_archive",
		OutputArchiveDir: "./output_archive",
		ConfigsDir:       "./configs",
		Log: LogSettings{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		OutputFormats:    []string{FormatXLSX},
		OutputNameFormat: "picking_{source}_{timestamp}",
		SortByName:       true,
		MaxConcurrency:   4,
		ContinueOnError:  true,
		Master: MasterConfig{
			Source:   SourceXLSX,
			Path:     "./master.xlsx",
			Encoding: "UTF-8",
		},
	}
}

// LoadMainConfig loads the main configuration from a YAML file, then applies
// environment overrides.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file. A missing file is
//     not an error; defaults and the environment are used instead.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be parsed or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}

	applyMainConfigDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyMainConfigDefaults fills values the file set to empty.
func applyMainConfigDefaults(cfg *MainConfig) {
	def := Default()
	if cfg.InputDir == "" {
		cfg.InputDir = def.InputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = def.InputArchiveDir
	}
	if cfg.OutputArchiveDir == "" {
		cfg.OutputArchiveDir = def.OutputArchiveDir
	}
	if cfg.ConfigsDir == "" {
		cfg.ConfigsDir = def.ConfigsDir
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = def.OutputNameFormat
	}
	if len(cfg.OutputFormats) == 0 {
		cfg.OutputFormats = def.OutputFormats
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = def.MaxConcurrency
	}
	if cfg.Master.Source == "" {
		cfg.Master.Source = def.Master.Source
	}
	if cfg.Master.Encoding == "" {
		cfg.Master.Encoding = def.Master.Encoding
	}
	if cfg.SelectableSKUs == nil {
		cfg.SelectableSKUs = DefaultSelectableSKUs()
	}
	if cfg.JANDisplayOverrides == nil {
		cfg.JANDisplayOverrides = DefaultJANDisplayOverrides()
	}
	for i, f := range cfg.OutputFormats {
		cfg.OutputFormats[i] = strings.ToLower(strings.TrimSpace(f))
	}
}

// Validate checks values that cannot be defaulted.
func (c *MainConfig) Validate() error {
	var errs []error

	if c.MaxConcurrency < 1 {
		errs = append(errs, fmt.Errorf("max_concurrency must be at least 1, got %d", c.MaxConcurrency))
	}

	for _, f := range c.OutputFormats {
		if f != FormatXLSX && f != FormatXML {
			errs = append(errs, fmt.Errorf("unknown output format %q", f))
		}
	}

	m := c.Master
	switch m.Source {
	case SourceXLSX, SourceCSV:
		if m.Path == "" {
			errs = append(errs, fmt.Errorf("master.path is required for source %q", m.Source))
		}
	case SourceSheets:
		if m.SpreadsheetID == "" {
			errs = append(errs, errors.New("master.spreadsheet_id is required for source \"sheets\""))
		}
		if m.APIKey == "" && m.CredentialsFile == "" {
			errs = append(errs, errors.New("master.api_key or master.credentials_file is required for source \"sheets\""))
		}
	case SourceGCS:
		if m.Bucket == "" || m.Object == "" {
			errs = append(errs, errors.New("master.bucket and master.object are required for source \"gcs\""))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown master source %q", m.Source))
	}

	for _, col := range m.Columns {
		if col.Field == "" {
			errs = append(errs, errors.New("master.columns entry without field"))
		}
		if col.Fallback != nil && *col.Fallback < 0 {
			errs = append(errs, fmt.Errorf("master.columns %s: fallback must not be negative", col.Field))
		}
	}

	return errors.Join(errs...)
}

// EnsureDirectories creates every working directory that does not exist.
func (c *MainConfig) EnsureDirectories() error {
	dirs := []string{
		c.InputDir,
		c.OutputDir,
		c.InputArchiveDir,
		c.OutputArchiveDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
