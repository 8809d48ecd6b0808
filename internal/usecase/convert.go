package usecase

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"ansify/internal/adapter/analyzer"
	"ansify/internal/adapter/definition"
	"ansify/internal/adapter/diagnostics"
	"ansify/internal/adapter/lineio"
	"ansify/internal/adapter/transcoder"
	"ansify/internal/domain"
	"ansify/internal/port"
)

// ConvertUseCase converts one C source stream at a time.
type ConvertUseCase struct {
	mode     domain.Mode
	maxLines int
	stripCR  bool
	log      zerolog.Logger
}

// NewConvertUseCase creates a converter for mode. maxLines caps the size of
// a single definition; zero selects the default.
func NewConvertUseCase(mode domain.Mode, maxLines int, stripCR bool, log zerolog.Logger) *ConvertUseCase {
	return &ConvertUseCase{
		mode:     mode,
		maxLines: maxLines,
		stripCR:  stripCR,
		log:      log,
	}
}

// ConvertResult counts what happened to one input.
type ConvertResult struct {
	LinesRead     int
	LinesWritten  int
	Definitions   int
	Converted     int
	PassedThrough int
	Missing       int
	Diagnostics   []domain.Diagnostic
}

// Mode returns the conversion mode.
func (u *ConvertUseCase) Mode() domain.Mode {
	return u.mode
}

// Convert reads src to the end and writes the converted text to sink.
// Each call starts from a fresh classifier, so calls never share nesting
// state. A definition longer than the line limit aborts the conversion.
func (u *ConvertUseCase) Convert(src port.LineSource, sink port.LineSink, diag port.Diagnostics) (*ConvertResult, error) {
	classifier := analyzer.NewClassifier()
	asm := definition.NewAssembler(src, classifier, u.maxLines)
	emitAll := u.mode != domain.ModePrototypes
	result := &ConvertResult{}

	for {
		line, ok := src.Next()
		if !ok {
			break
		}

		// Uninteresting lines, and interesting ones without a '(' outside
		// comments (externals), are copied through.
		if classifier.Classify(line) != analyzer.Interesting ||
			!strings.Contains(analyzer.StripComments(line), "(") {
			if emitAll {
				if err := sink.WriteLine(line); err != nil {
					return result, fmt.Errorf("failed to write output: %w", err)
				}
			}
			continue
		}

		unit, err := asm.Assemble(line)
		if err == nil && definition.IsFunction(unit) {
			err = asm.Complete(&unit)
		} else if err == nil {
			// Prototype or external declaration.
			if emitAll {
				if err := writeLines(sink, unit.Lines); err != nil {
					return result, err
				}
			}
			continue
		}
		if err != nil {
			var tooLong *domain.DefinitionTooLongError
			if errors.As(err, &tooLong) && diag != nil {
				diag.DefinitionTooLong(err)
			}
			return result, err
		}

		result.Definitions++
		res, err := transcoder.Transcode(sink, unit, u.mode, diag)
		if err != nil {
			return result, fmt.Errorf("failed to write definition: %w", err)
		}
		if res.Converted {
			result.Converted++
		} else {
			result.PassedThrough++
		}
		result.Missing += len(res.Missing)
	}

	if err := src.Err(); err != nil {
		return result, fmt.Errorf("failed to read input: %w", err)
	}
	return result, nil
}

// ConvertReader converts r into w, reporting diagnostics against name.
func (u *ConvertUseCase) ConvertReader(name string, r io.Reader, w io.Writer) (*ConvertResult, error) {
	reporter := diagnostics.NewReporter(u.log, name)
	src := lineio.NewReader(r, u.stripCR)
	sink := lineio.NewWriter(w)

	result, err := u.Convert(src, sink, reporter)
	if result != nil {
		result.LinesRead = src.Count()
		result.Diagnostics = reporter.Issues()
	}
	if err != nil {
		return result, err
	}
	if err := sink.Flush(); err != nil {
		return result, fmt.Errorf("failed to flush output: %w", err)
	}
	result.LinesWritten = sink.Lines()

	u.log.Debug().
		Str("file", name).
		Int("lines_read", result.LinesRead).
		Int("lines_written", result.LinesWritten).
		Int("definitions", result.Definitions).
		Int("converted", result.Converted).
		Msg("conversion finished")

	return result, nil
}

// ConvertString converts source text held in memory.
func (u *ConvertUseCase) ConvertString(text string) (string, *ConvertResult, error) {
	var out strings.Builder
	result, err := u.ConvertReader("<string>", strings.NewReader(text), &out)
	return out.String(), result, err
}

// ConvertFile converts the file at in and writes the result to out. "-"
// stands for stdin or stdout. File output goes through a temporary file in
// the target directory, so in and out may be the same path.
func (u *ConvertUseCase) ConvertFile(in, out string) (*ConvertResult, error) {
	var r io.Reader = os.Stdin
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return nil, fmt.Errorf("unable to open input file %s: %w", in, err)
		}
		defer f.Close()
		r = f
	}

	if out == "-" {
		return u.ConvertReader(in, r, os.Stdout)
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), ".ansify-*")
	if err != nil {
		return nil, fmt.Errorf("unable to open output file %s: %w", out, err)
	}
	defer os.Remove(tmp.Name())

	result, err := u.ConvertReader(in, r, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output: %w", cerr)
	}
	if err != nil {
		return result, err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(in); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return result, fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		return result, fmt.Errorf("failed to write output file %s: %w", out, err)
	}
	return result, nil
}

func writeLines(sink port.LineSink, lines []string) error {
	for _, line := range lines {
		if err := sink.WriteLine(line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
