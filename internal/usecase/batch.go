package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"ansify/internal/domain"
	"ansify/internal/port"
)

// BatchOptions controls where a batch run writes and what it may skip.
type BatchOptions struct {
	// OutputDir receives converted files under their relative paths. Empty
	// means files are converted next to (or in place of) their sources.
	OutputDir string
	// Suffix is inserted before the file extension of every output.
	Suffix string
	// Workers bounds the number of files converted at once.
	Workers int
	// Incremental skips files whose recorded hash still matches.
	Incremental bool
	// Force converts every file regardless of recorded state.
	Force bool
}

// BatchUseCase converts every matching file under a directory.
type BatchUseCase struct {
	converter *ConvertUseCase
	walker    port.FileWalker
	state     port.StateStore
	opts      BatchOptions
	log       zerolog.Logger
}

// NewBatchUseCase creates a batch use case. state may be nil, which
// disables incremental runs.
func NewBatchUseCase(
	converter *ConvertUseCase,
	walker port.FileWalker,
	state port.StateStore,
	opts BatchOptions,
	log zerolog.Logger,
) *BatchUseCase {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &BatchUseCase{
		converter: converter,
		walker:    walker,
		state:     state,
		opts:      opts,
		log:       log,
	}
}

// BatchResult contains the results of a batch run.
type BatchResult struct {
	FilesConverted int
	FilesSkipped   int
	FilesFailed    int
	FilesForgotten int
	Definitions    int
	Converted      int
	Warnings       int
	Errors         []string
}

// ProgressFunc is called after each file is handled.
type ProgressFunc func(done, total int, path string)

// Run converts the files under root. Per-file failures are collected in the
// result; only walking errors and cancellation fail the run.
func (u *BatchUseCase) Run(ctx context.Context, root string, progress ProgressFunc) (*BatchResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	files = u.withoutOutputs(root, files)

	result := &BatchResult{}
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.opts.Workers)

	for _, file := range files {
		if gctx.Err() != nil {
			break
		}
		file := file // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outcome, err := u.convertOne(file)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.FilesFailed++
				result.Errors = append(result.Errors, fmt.Sprintf("failed to convert %s: %v", file.RelPath, err))
				u.log.Error().Err(err).Str("file", file.RelPath).Msg("conversion failed")
			case outcome == nil:
				result.FilesSkipped++
			default:
				result.FilesConverted++
				result.Definitions += outcome.Definitions
				result.Converted += outcome.Converted
				result.Warnings += outcome.Missing
			}
			done++
			if progress != nil {
				progress(done, len(files), file.RelPath)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if err := u.forgetMissing(files, result); err != nil {
		return result, err
	}

	return result, nil
}

// convertOne converts a single file. A nil result with a nil error means
// the file was skipped as unchanged.
func (u *BatchUseCase) convertOne(file port.FileInfo) (*ConvertResult, error) {
	src, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, err
	}
	hash := hashBytes(src)
	out := u.outputPath(file)

	if u.canSkip(file, hash, out) {
		u.log.Debug().Str("file", file.RelPath).Msg("unchanged, skipping")
		return nil, nil
	}

	var buf bytes.Buffer
	res, err := u.converter.ConvertReader(file.RelPath, bytes.NewReader(src), &buf)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(file.Path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeFileAtomic(out, buf.Bytes(), info.Mode().Perm()); err != nil {
		return nil, err
	}

	if u.state != nil {
		// In-place output replaces the source, so the next run sees the
		// converted text.
		if out == file.Path {
			hash = hashBytes(buf.Bytes())
		}
		rec := domain.ConversionRecord{
			Path:        file.RelPath,
			Output:      out,
			Hash:        hash,
			Mode:        u.converter.Mode().String(),
			ConvertedAt: time.Now().UTC(),
			Definitions: res.Definitions,
			Converted:   res.Converted,
			Warnings:    len(res.Diagnostics),
		}
		if err := u.state.Put(rec); err != nil {
			return nil, fmt.Errorf("failed to record state: %w", err)
		}
	}

	return res, nil
}

func (u *BatchUseCase) canSkip(file port.FileInfo, hash, out string) bool {
	if u.state == nil || !u.opts.Incremental || u.opts.Force {
		return false
	}
	rec, found, err := u.state.Get(file.RelPath)
	if err != nil || !found {
		return false
	}
	if rec.Hash != hash || rec.Output != out || rec.Mode != u.converter.Mode().String() {
		return false
	}
	_, err = os.Stat(out)
	return err == nil
}

// forgetMissing drops records of files that no longer exist under root.
func (u *BatchUseCase) forgetMissing(files []port.FileInfo, result *BatchResult) error {
	if u.state == nil {
		return nil
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f.RelPath] = true
	}

	recs, err := u.state.List()
	if err != nil {
		return fmt.Errorf("failed to list state: %w", err)
	}
	for _, rec := range recs {
		if seen[rec.Path] {
			continue
		}
		if err := u.state.Delete(rec.Path); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to forget %s: %v", rec.Path, err))
			continue
		}
		result.FilesForgotten++
	}
	return nil
}

// outputPath maps a source file to where its conversion is written.
func (u *BatchUseCase) outputPath(file port.FileInfo) string {
	rel := filepath.FromSlash(file.RelPath)
	if u.opts.Suffix != "" {
		ext := filepath.Ext(rel)
		rel = strings.TrimSuffix(rel, ext) + u.opts.Suffix + ext
	}

	root := walkRoot(file)
	if u.opts.OutputDir == "" {
		return filepath.Join(root, rel)
	}
	return filepath.Join(u.outputRoot(root), rel)
}

func (u *BatchUseCase) outputRoot(root string) string {
	if filepath.IsAbs(u.opts.OutputDir) {
		return u.opts.OutputDir
	}
	return filepath.Join(root, u.opts.OutputDir)
}

// withoutOutputs drops files that are themselves outputs of a previous run.
func (u *BatchUseCase) withoutOutputs(root string, files []port.FileInfo) []port.FileInfo {
	var outDir string
	if u.opts.OutputDir != "" {
		if abs, err := filepath.Abs(root); err == nil {
			outDir = u.outputRoot(abs) + string(filepath.Separator)
		}
	}

	kept := files[:0]
	for _, f := range files {
		if outDir != "" && strings.HasPrefix(f.Path, outDir) {
			continue
		}
		if u.opts.Suffix != "" && strings.HasSuffix(strings.TrimSuffix(f.RelPath, filepath.Ext(f.RelPath)), u.opts.Suffix) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

// walkRoot returns the directory a file was found under.
func walkRoot(file port.FileInfo) string {
	return filepath.Clean(strings.TrimSuffix(file.Path, filepath.FromSlash(file.RelPath)))
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ansify-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
