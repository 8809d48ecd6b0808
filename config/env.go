package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ANSIFY"

// EnvConfig mirrors the settings that can be overridden from the
// environment. Unset variables leave the loaded value alone. Names are
// derived from the field names so only the prefixed form is read.
type EnvConfig struct {
	// Env: ANSIFY_MODE
	Mode string `split_words:"true"`

	// Env: ANSIFY_MAX_DEFINITION_LINES
	MaxDefinitionLines int `split_words:"true"`

	// Env: ANSIFY_STRIP_CR
	StripCR bool `split_words:"true"`

	// Env: ANSIFY_INCLUDES (comma separated)
	Includes []string `split_words:"true"`

	// Env: ANSIFY_EXCLUDES (comma separated)
	Excludes []string `split_words:"true"`

	// Env: ANSIFY_OUTPUT_DIR
	OutputDir string `split_words:"true"`

	// Env: ANSIFY_SUFFIX
	Suffix string `split_words:"true"`

	// Env: ANSIFY_WORKERS
	Workers int `split_words:"true"`

	// Env: ANSIFY_INCREMENTAL
	Incremental bool `split_words:"true"`

	// Env: ANSIFY_LOG_LEVEL
	LogLevel string `split_words:"true"`

	// Env: ANSIFY_LOG_FORMAT
	LogFormat string `split_words:"true"`
}

// ApplyEnv overlays ANSIFY_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	env := EnvConfig{
		Mode:               c.Convert.Mode,
		MaxDefinitionLines: c.Convert.MaxDefinitionLines,
		StripCR:            c.Convert.StripCR,
		Includes:           c.Batch.Includes,
		Excludes:           c.Batch.Excludes,
		OutputDir:          c.Batch.OutputDir,
		Suffix:             c.Batch.Suffix,
		Workers:            c.Batch.Workers,
		Incremental:        c.Batch.Incremental,
		LogLevel:           c.Logging.Level,
		LogFormat:          c.Logging.Format,
	}
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return err
	}

	c.Convert.Mode = env.Mode
	c.Convert.MaxDefinitionLines = env.MaxDefinitionLines
	c.Convert.StripCR = env.StripCR
	c.Batch.Includes = env.Includes
	c.Batch.Excludes = env.Excludes
	c.Batch.OutputDir = env.OutputDir
	c.Batch.Suffix = env.Suffix
	c.Batch.Workers = env.Workers
	c.Batch.Incremental = env.Incremental
	c.Logging.Level = env.LogLevel
	c.Logging.Format = env.LogFormat
	return nil
}

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// A missing file is not an error. Variables already set are kept.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	return godotenv.Load(path)
}
