package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"ansify/config"
	"ansify/internal/adapter/fs"
	"ansify/internal/adapter/store"
	"ansify/internal/port"
	"ansify/internal/usecase"
)

var (
	batchOut     string
	batchSuffix  string
	batchWorkers int
	batchForce   bool
	batchMode    string
)

var batchCmd = &cobra.Command{
	Use:   "batch [path]",
	Short: "Convert every C file under a directory",
	Long: `Convert the files under a directory that match batch.includes and none of
batch.excludes. Files are converted in place unless --out is given, in which
case the directory layout is mirrored below it.

Conversion state is kept in .ansify/state.db within the target directory so
unchanged files are skipped on the next run.

Examples:
  ansify batch .                  # convert current directory in place
  ansify batch src --out ansi     # write converted copies to src/ansi
  ansify batch --suffix .proto --mode proto`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output directory (default converts in place)")
	batchCmd.Flags().StringVar(&batchSuffix, "suffix", "", "suffix inserted before each output file extension")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of files converted at once")
	batchCmd.Flags().BoolVar(&batchForce, "force", false, "convert files even when unchanged")
	batchCmd.Flags().StringVar(&batchMode, "mode", "", "conversion mode (ansi, kr, proto)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()
	log := GetLogger()
	applyBatchFlags(cfg)

	mode, err := cfg.Mode()
	if err != nil {
		return err
	}

	var state port.StateStore
	dbPath := config.StateDBPath(path)
	if cfg.Batch.Incremental {
		if err := config.EnsureStateDir(path); err != nil {
			return fmt.Errorf("failed to create .ansify directory: %w", err)
		}
		st, err := store.NewBoltStore(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open state store: %w", err)
		}
		defer st.Close()

		migration, err := st.Prepare(cfg)
		if err != nil {
			return fmt.Errorf("failed to prepare state store: %w", err)
		}
		if migration.NeedsReset {
			fmt.Printf("Conversion state reset: %s\n", migration.Reason)
		}
		state = st
	}

	converter := usecase.NewConvertUseCase(mode, cfg.Convert.MaxDefinitionLines, cfg.Convert.StripCR, log)
	walker := fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes)
	batchUC := usecase.NewBatchUseCase(converter, walker, state, usecase.BatchOptions{
		OutputDir:   cfg.Batch.OutputDir,
		Suffix:      cfg.Batch.Suffix,
		Workers:     cfg.Batch.Workers,
		Incremental: cfg.Batch.Incremental,
		Force:       batchForce,
	}, log)

	fmt.Printf("Scanning %s...\n", path)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time

	progressCallback := func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Converting[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}

		bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			remaining := total - processed
			if rate > 0 {
				eta := time.Duration(float64(remaining)/rate) * time.Second
				bar.Describe(fmt.Sprintf("[cyan]Converting[reset] ETA: %s", formatDuration(eta)))
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := batchUC.Run(ctx, path, progressCallback)
	if err != nil {
		return fmt.Errorf("batch conversion failed: %w", err)
	}

	fmt.Printf("\nConversion complete in %s:\n", formatDuration(time.Since(start)))
	fmt.Printf("  Files converted:  %d\n", result.FilesConverted)
	fmt.Printf("  Files skipped:    %d (unchanged)\n", result.FilesSkipped)
	fmt.Printf("  Files failed:     %d\n", result.FilesFailed)
	if result.FilesForgotten > 0 {
		fmt.Printf("  Files forgotten:  %d (removed)\n", result.FilesForgotten)
	}
	fmt.Printf("  Definitions:      %d (%d rewritten)\n", result.Definitions, result.Converted)
	if result.Warnings > 0 {
		fmt.Printf("  Missing params:   %d\n", result.Warnings)
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if state != nil {
		fmt.Printf("\nState stored at: %s\n", dbPath)
	}
	if result.FilesFailed > 0 {
		return fmt.Errorf("%d file(s) failed to convert", result.FilesFailed)
	}
	return nil
}

// applyBatchFlags lets command line flags override the loaded config.
func applyBatchFlags(cfg *config.Config) {
	if batchOut != "" {
		cfg.Batch.OutputDir = batchOut
	}
	if batchSuffix != "" {
		cfg.Batch.Suffix = batchSuffix
	}
	if batchWorkers > 0 {
		cfg.Batch.Workers = batchWorkers
	}
	if batchMode != "" {
		cfg.Convert.Mode = batchMode
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
