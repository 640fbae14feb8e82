package app

import (
	"context"
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/bft-labs/excise/internal/domain"
	"github.com/bft-labs/excise/internal/ports"
)

// ExciserConfig contains configuration for a repair run.
type ExciserConfig struct {
	Range domain.Range

	// MinLines is the shortest file the repair accepts. Shorter files are
	// assumed to be already repaired and are left alone.
	MinLines int

	// DryRun reports the excision and writes a unified diff to DiffOut
	// instead of saving.
	DryRun  bool
	DiffOut io.Writer
}

// Result describes the outcome of a repair.
type Result struct {
	Path          string
	OriginalLines int
	RemovedLines  int
	NewLines      int
	Written       bool
}

// Exciser removes a fixed range of lines from a file.
type Exciser struct {
	config ExciserConfig
	store  ports.LineStore
	logger ports.Logger
}

// NewExciser creates a new exciser with the given dependencies.
func NewExciser(config ExciserConfig, store ports.LineStore, logger ports.Logger) *Exciser {
	return &Exciser{
		config: config,
		store:  store,
		logger: logger,
	}
}

// Repair loads path, removes the configured range and writes the result back.
//
// It returns domain.ErrTooShort without writing when the file has fewer than
// MinLines lines, and domain.ErrRangeOutOfBounds when the range runs past the
// end of the file. A failed in-place write is not rolled back.
func (e *Exciser) Repair(ctx context.Context, path string) (Result, error) {
	res := Result{Path: path}
	r := e.config.Range
	if err := r.Validate(); err != nil {
		return res, err
	}

	lines, err := e.store.Load(ctx, path)
	if err != nil {
		return res, err
	}
	res.OriginalLines = lines.Len()
	e.logger.Info("total lines", ports.String("path", path), ports.Int("lines", lines.Len()))

	if lines.Len() < e.config.MinLines {
		e.logger.Warn("file is smaller than expected, aborting",
			ports.Int("lines", lines.Len()),
			ports.Int("min_lines", e.config.MinLines),
		)
		return res, fmt.Errorf("%w: %d lines, need at least %d", domain.ErrTooShort, lines.Len(), e.config.MinLines)
	}

	e.previewBoundaries(lines)

	spliced, err := r.Splice(lines)
	if err != nil {
		return res, err
	}
	res.RemovedLines = r.Width()
	res.NewLines = spliced.Len()
	e.logger.Info("new line count", ports.Int("lines", spliced.Len()), ports.Int("removed", r.Width()))

	if e.config.DryRun {
		if err := e.writeDiff(path, lines, spliced); err != nil {
			return res, fmt.Errorf("write diff: %w", err)
		}
		e.logger.Info("dry run, file not modified", ports.String("path", path))
		return res, nil
	}

	if err := e.store.Save(ctx, path, spliced); err != nil {
		return res, err
	}
	res.Written = true
	e.logger.Info("file updated successfully", ports.String("path", path))
	return res, nil
}

// previewBoundaries logs the lines on either edge of the range so an
// operator can check them.
func (e *Exciser) previewBoundaries(lines domain.Lines) {
	r := e.config.Range
	e.logPreview("first excised line", lines, r.KeepStart)
	e.logPreview("last excised line", lines, r.LastExcised())
	e.logPreview("first kept line", lines, r.KeepResumeAt)
}

func (e *Exciser) logPreview(msg string, lines domain.Lines, i int) {
	text, ok := lines.Preview(i)
	if !ok {
		e.logger.Info(msg, ports.Int("index", i), ports.Bool("eof", true))
		return
	}
	e.logger.Info(msg, ports.Int("index", i), ports.String("text", text))
}

func (e *Exciser) writeDiff(path string, before, after domain.Lines) error {
	if e.config.DiffOut == nil {
		return nil
	}
	diff := difflib.UnifiedDiff{
		A:        before,
		B:        after,
		FromFile: path,
		ToFile:   path + " (excised)",
		Context:  3,
	}
	return difflib.WriteUnifiedDiff(e.config.DiffOut, diff)
}
