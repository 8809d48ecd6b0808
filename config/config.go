package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ansify/internal/domain"
)

// Config holds all configuration for the converter.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds per-file conversion configuration.
type ConvertConfig struct {
	Mode               string `yaml:"mode"` // "ansi", "kr", "proto"
	MaxDefinitionLines int    `yaml:"max_definition_lines"`
	StripCR            bool   `yaml:"strip_cr"`
}

// BatchConfig holds directory conversion configuration.
type BatchConfig struct {
	Includes    []string `yaml:"includes"`
	Excludes    []string `yaml:"excludes"`
	OutputDir   string   `yaml:"output_dir"` // empty converts in place
	Suffix      string   `yaml:"suffix"`     // e.g. ".ansi.c"
	Workers     int      `yaml:"workers"`
	Incremental bool     `yaml:"incremental"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "pretty" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			Mode:               "ansi",
			MaxDefinitionLines: 50,
			StripCR:            true,
		},
		Batch: BatchConfig{
			Includes:    []string{"**/*.c", "**/*.h"},
			Excludes:    []string{"**/.git/**", "**/build/**", "**/.ansify/**"},
			Workers:     1,
			Incremental: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "pretty",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for ansify.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ansify.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".ansify", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Mode returns the parsed conversion mode.
func (c *Config) Mode() (domain.Mode, error) {
	return domain.ParseMode(c.Convert.Mode)
}

// Validate checks the configuration for values the converter cannot use.
func (c *Config) Validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.Convert.MaxDefinitionLines < 1 {
		return fmt.Errorf("convert.max_definition_lines must be positive, got %d", c.Convert.MaxDefinitionLines)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	switch c.Logging.Format {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("logging.format must be pretty or json, got %q", c.Logging.Format)
	}
	return nil
}

// StateDBPath returns the path to the conversion state database.
func StateDBPath(dir string) string {
	return filepath.Join(dir, ".ansify", "state.db")
}

// EnsureStateDir ensures the .ansify directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".ansify"), 0755)
}
