// Package excise removes a fixed range of lines from a text file in place.
//
// It exists to repair a file where a block of lines was duplicated or
// corrupted at a known position. The range and a minimum length guard are
// supplied by the caller; a file shorter than the guard is treated as
// already repaired and left alone.
//
// Example usage:
//
//	cfg := excise.DefaultConfig()
//	cfg.File = "app/globals.css"
//	res, err := excise.Repair(context.Background(), cfg)
//	if errors.Is(err, excise.ErrTooShort) {
//	    // nothing to do
//	}
package excise

import (
	"context"
	"io"

	"github.com/bft-labs/excise/internal/adapters/fs"
	logAdapter "github.com/bft-labs/excise/internal/adapters/log"
	"github.com/bft-labs/excise/internal/app"
	"github.com/bft-labs/excise/internal/cliconfig"
	"github.com/bft-labs/excise/internal/domain"
	"github.com/bft-labs/excise/internal/ports"
)

// Config holds the repair configuration.
// Use DefaultConfig() to get a Config with the stock range.
type Config = cliconfig.Config

// Result describes the outcome of a repair.
type Result = app.Result

// Logger is the interface for structured logging.
type Logger = ports.Logger

// Errors returned by Repair. Check with errors.Is.
var (
	ErrTooShort         = domain.ErrTooShort
	ErrRangeOutOfBounds = domain.ErrRangeOutOfBounds
	ErrInvalidRange     = domain.ErrInvalidRange
	ErrInvalidEncoding  = domain.ErrInvalidEncoding
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Option configures optional behavior of Repair.
type Option func(*options)

type options struct {
	logger  ports.Logger
	diffOut io.Writer
}

// WithLogger sets the logger that receives progress diagnostics.
// By default diagnostics are discarded.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDiffOutput sets where a dry run writes its unified diff.
func WithDiffOutput(w io.Writer) Option {
	return func(o *options) {
		o.diffOut = w
	}
}

// Repair validates cfg and removes the configured range from cfg.File.
func Repair(ctx context.Context, cfg Config, opts ...Option) (Result, error) {
	o := options{logger: logAdapter.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return Result{Path: cfg.File}, err
	}
	r, err := cfg.Range()
	if err != nil {
		return Result{Path: cfg.File}, err
	}

	e := app.NewExciser(app.ExciserConfig{
		Range:    r,
		MinLines: cfg.MinLines,
		DryRun:   cfg.DryRun,
		DiffOut:  o.diffOut,
	}, fs.NewLineFileStore(cfg.Atomic), o.logger)

	return e.Repair(ctx, cfg.File)
}
