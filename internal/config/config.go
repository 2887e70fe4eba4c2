// Package config loads settings for the datescan command.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration.
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// ScanConfig controls which files are read and how many at once.
type ScanConfig struct {
	Workers      int    `yaml:"workers"        env:"DATESCAN_WORKERS"        env-default:"4"`
	Extension    string `yaml:"extension"      env:"DATESCAN_EXT"            env-default:".txt"`
	MaxFileBytes int64  `yaml:"max_file_bytes" env:"DATESCAN_MAX_FILE_BYTES" env-default:"4194304"`
}

// OutputConfig controls the report.
type OutputConfig struct {
	Format  string `yaml:"format"   env:"DATESCAN_FORMAT"   env-default:"text"`
	NoColor bool   `yaml:"no_color" env:"DATESCAN_NO_COLOR"`
	Sort    bool   `yaml:"sort"     env:"DATESCAN_SORT"`
	Last    bool   `yaml:"last"     env:"DATESCAN_LAST"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	validFormats    = []string{FormatText, FormatJSON, FormatYAML}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An empty path loads from ENV + defaults only; a non-empty path must exist.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error

	if c.Scan.Workers < 1 {
		errs = append(errs, fmt.Errorf("scan.workers must be positive, got %d", c.Scan.Workers))
	}
	if c.Scan.MaxFileBytes < 1 {
		errs = append(errs, fmt.Errorf("scan.max_file_bytes must be positive, got %d", c.Scan.MaxFileBytes))
	}
	if c.Scan.Extension != "" && !strings.HasPrefix(c.Scan.Extension, ".") {
		errs = append(errs, fmt.Errorf("scan.extension must start with '.', got %q", c.Scan.Extension))
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Output.Format)) {
		errs = append(errs, fmt.Errorf("output.format must be one of %v, got %q", validFormats, c.Output.Format))
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level must be one of %v, got %q", validLogLevels, c.Log.Level))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("log.format must be one of %v, got %q", validLogFormats, c.Log.Format))
	}

	return errors.Join(errs...)
}
