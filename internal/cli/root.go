package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ansify/config"
	"ansify/internal/logging"
)

// Version is reported by the banner and --version.
const Version = "1.7.0"

var (
	cfgFile  string
	cfg      *config.Config
	rootDir  string
	logLevel string
	envFile  string
	logger   zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "ansify",
	Short:   "Convert C function definitions between K&R and ANSI style",
	Version: Version,
	Long: `ansify rewrites the parameter lists of C function definitions between
K&R style (names in the list, types declared below) and ANSI style (types
inline), or emits a prototype for every definition in a file.

Example usage:
  ansify convert old.c new.c        # K&R to ANSI
  ansify convert -k new.c old.c     # ANSI to K&R
  ansify convert -p lib.c lib.h     # prototypes only
  ansify batch src --out ansi       # convert a tree`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if err := config.LoadDotEnv(envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.ApplyEnv(); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger = logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ansify.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is ./.env)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

func GetLogger() zerolog.Logger {
	return logger
}
