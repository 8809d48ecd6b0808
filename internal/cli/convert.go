package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ansify/internal/domain"
	"ansify/internal/usecase"
)

var (
	convertKR     bool
	convertProtos bool
	convertQuiet  bool
	convertMode   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <in.c> <out.c>",
	Short: "Convert a single C file",
	Long: `Convert a K&R style C file to ANSI or vice versa.

Only function definitions at file scope are rewritten. Everything else is
copied unchanged, except in prototype mode where only the prototypes are
written. Use - for stdin or stdout.

Examples:
  ansify convert old.c new.c       # K&R to ANSI
  ansify convert -k new.c old.c    # ANSI to K&R
  ansify convert -p lib.c -        # prototypes to stdout`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVarP(&convertKR, "kr", "k", false, "generate K&R form code from ANSI")
	convertCmd.Flags().BoolVarP(&convertProtos, "protos", "p", false, "generate a set of prototypes")
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false, "quiet mode")
	convertCmd.Flags().StringVar(&convertMode, "mode", "", "conversion mode (ansi, kr, proto)")
	convertCmd.MarkFlagsMutuallyExclusive("kr", "protos", "mode")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	mode, err := resolveMode(cfg.Convert.Mode)
	if err != nil {
		return err
	}

	log := GetLogger()
	if convertQuiet && log.GetLevel() < zerolog.WarnLevel {
		log = log.Level(zerolog.WarnLevel)
	}
	if !convertQuiet {
		printBanner(cmd.ErrOrStderr(), mode, args[0])
	}

	converter := usecase.NewConvertUseCase(mode, cfg.Convert.MaxDefinitionLines, cfg.Convert.StripCR, log)
	result, err := converter.ConvertFile(args[0], args[1])
	if err != nil {
		return err
	}

	log.Info().
		Int("lines", result.LinesRead).
		Int("definitions", result.Definitions).
		Int("converted", result.Converted).
		Int("warnings", len(result.Diagnostics)).
		Msg("done")
	return nil
}

// resolveMode applies the command line flags over the configured mode.
func resolveMode(configured string) (domain.Mode, error) {
	switch {
	case convertKR:
		return domain.ModeKR, nil
	case convertProtos:
		return domain.ModePrototypes, nil
	case convertMode != "":
		return domain.ParseMode(convertMode)
	default:
		return domain.ParseMode(configured)
	}
}

func printBanner(w io.Writer, mode domain.Mode, in string) {
	fmt.Fprintf(w, "ansify C converter v%s\n\n", Version)
	switch mode {
	case domain.ModeANSI:
		fmt.Fprintf(w, "Converting file %s to ANSI\n", in)
	case domain.ModeKR:
		fmt.Fprintf(w, "Converting file %s to Kernighan and Ritchie\n", in)
	case domain.ModePrototypes:
		fmt.Fprintf(w, "Generating prototypes for file %s\n", in)
	}
}
