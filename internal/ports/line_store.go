package ports

import (
	"context"

	"github.com/bft-labs/excise/internal/domain"
)

// LineStore reads and writes a text file as a sequence of lines.
type LineStore interface {
	// Load reads the whole file at path. The file handle is released
	// before Load returns.
	// Returns domain.ErrInvalidEncoding if the content is not valid UTF-8.
	Load(ctx context.Context, path string) (domain.Lines, error)

	// Save overwrites the file at path with lines, in order, preserving
	// each line's terminator.
	Save(ctx context.Context, path string, lines domain.Lines) error
}
