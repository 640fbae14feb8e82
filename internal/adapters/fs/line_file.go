package fs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/bft-labs/excise/internal/domain"
)

const tmpSuffix = ".tmp"

// LineFileStore implements ports.LineStore on the local file system.
//
// By default Save truncates the target and rewrites it in place, so a
// failure part way through can leave the file incomplete. With Atomic set,
// Save writes a sibling temp file and renames it over the target.
type LineFileStore struct {
	atomic bool
}

// NewLineFileStore creates a LineFileStore. atomic selects temp-file-and-rename writes.
func NewLineFileStore(atomic bool) *LineFileStore {
	return &LineFileStore{atomic: atomic}
}

// Atomic reports whether Save replaces the file atomically.
func (s *LineFileStore) Atomic() bool {
	return s.atomic
}

// Load reads the file at path as UTF-8 text.
func (s *LineFileStore) Load(ctx context.Context, path string) (domain.Lines, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidEncoding, path)
	}
	return domain.SplitLines(string(data)), nil
}

// Save writes lines to path.
func (s *LineFileStore) Save(ctx context.Context, path string, lines domain.Lines) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.atomic {
		return s.saveAtomic(path, lines)
	}
	return s.saveInPlace(path, lines)
}

// saveInPlace truncates path and writes every line.
func (s *LineFileStore) saveInPlace(path string, lines domain.Lines) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := writeLines(f, lines); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// saveAtomic writes to path+".tmp" and renames it over path.
// The existing file mode is kept.
func (s *LineFileStore) saveAtomic(path string, lines domain.Lines) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp := path + tmpSuffix
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if err := writeLines(f, lines); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	// Atomic rename
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s -> %s: %w", tmp, path, err)
	}
	return nil
}

func writeLines(w io.Writer, lines domain.Lines) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
