package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bft-labs/excise/internal/adapters/fs"
	"github.com/bft-labs/excise/internal/domain"
	"github.com/bft-labs/excise/internal/ports"
)

// recordingLogger implements ports.Logger and keeps every message.
type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *recordingLogger) Debug(msg string, fields ...ports.Field) { l.record(msg) }
func (l *recordingLogger) Info(msg string, fields ...ports.Field)  { l.record(msg) }
func (l *recordingLogger) Warn(msg string, fields ...ports.Field)  { l.record(msg) }
func (l *recordingLogger) Error(msg string, fields ...ports.Field) { l.record(msg) }

func (l *recordingLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.msgs {
		if m == msg {
			return true
		}
	}
	return false
}

// failingStore loads fine but fails every save.
type failingStore struct {
	lines domain.Lines
	saves int
}

func (s *failingStore) Load(ctx context.Context, path string) (domain.Lines, error) {
	return s.lines, nil
}

func (s *failingStore) Save(ctx context.Context, path string, lines domain.Lines) error {
	s.saves++
	return errors.New("disk full")
}

func defaultConfig() ExciserConfig {
	return ExciserConfig{
		Range:    domain.Range{KeepStart: 720, KeepResumeAt: 915},
		MinLines: 900,
	}
}

func writeNumbered(t *testing.T, n int) (string, []string) {
	t.Helper()
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("  .rule-%d { color: red; }\n", i)
	}
	path := filepath.Join(t.TempDir(), "globals.css")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path, lines
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return domain.SplitLines(string(b))
}

func TestRepair(t *testing.T) {
	path, in := writeNumbered(t, 1000)
	logger := &recordingLogger{}
	e := NewExciser(defaultConfig(), fs.NewLineFileStore(false), logger)

	res, err := e.Repair(context.Background(), path)
	if err != nil {
		t.Fatalf("Repair() error = %v", err)
	}
	if !res.Written || res.OriginalLines != 1000 || res.RemovedLines != 195 || res.NewLines != 805 {
		t.Fatalf("Repair() result = %+v", res)
	}

	out := readLines(t, path)
	if len(out) != 805 {
		t.Fatalf("output has %d lines, want 805", len(out))
	}
	if out[0] != in[0] {
		t.Errorf("line 0 = %q, want %q", out[0], in[0])
	}
	if out[720] != in[915] {
		t.Errorf("line 720 = %q, want %q", out[720], in[915])
	}
	for _, msg := range []string{"total lines", "first excised line", "last excised line", "first kept line", "new line count", "file updated successfully"} {
		if !logger.has(msg) {
			t.Errorf("missing diagnostic %q", msg)
		}
	}
}

func TestRepairTooShort(t *testing.T) {
	path, _ := writeNumbered(t, 800)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	logger := &recordingLogger{}
	e := NewExciser(defaultConfig(), fs.NewLineFileStore(false), logger)

	res, err := e.Repair(context.Background(), path)
	if !errors.Is(err, domain.ErrTooShort) {
		t.Fatalf("Repair() error = %v, want ErrTooShort", err)
	}
	if res.Written {
		t.Fatal("Repair() reported a write")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("file changed after aborted repair")
	}
	if !logger.has("file is smaller than expected, aborting") {
		t.Error("missing abort diagnostic")
	}
}

func TestRepairTwiceAborts(t *testing.T) {
	path, _ := writeNumbered(t, 1000)
	e := NewExciser(defaultConfig(), fs.NewLineFileStore(false), &recordingLogger{})

	if _, err := e.Repair(context.Background(), path); err != nil {
		t.Fatalf("first Repair() error = %v", err)
	}
	repaired, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Repair(context.Background(), path); !errors.Is(err, domain.ErrTooShort) {
		t.Fatalf("second Repair() error = %v, want ErrTooShort", err)
	}
	again, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(repaired, again) {
		t.Fatal("second run modified the file")
	}
}

func TestRepairRangeTouchesEnd(t *testing.T) {
	path, in := writeNumbered(t, 915)
	e := NewExciser(defaultConfig(), fs.NewLineFileStore(false), &recordingLogger{})

	res, err := e.Repair(context.Background(), path)
	if err != nil {
		t.Fatalf("Repair() error = %v", err)
	}
	if res.NewLines != 720 {
		t.Fatalf("NewLines = %d, want 720", res.NewLines)
	}
	out := readLines(t, path)
	if strings.Join(out, "") != strings.Join(in[:720], "") {
		t.Fatal("output is not exactly the kept prefix")
	}
}

func TestRepairRangeOutOfBounds(t *testing.T) {
	path, _ := writeNumbered(t, 910)
	before, _ := os.ReadFile(path)
	e := NewExciser(defaultConfig(), fs.NewLineFileStore(false), &recordingLogger{})

	_, err := e.Repair(context.Background(), path)
	if !errors.Is(err, domain.ErrRangeOutOfBounds) {
		t.Fatalf("Repair() error = %v, want ErrRangeOutOfBounds", err)
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Fatal("file changed after failed repair")
	}
}

func TestRepairMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.css")
	e := NewExciser(defaultConfig(), fs.NewLineFileStore(false), &recordingLogger{})

	_, err := e.Repair(context.Background(), path)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Repair() error = %v, want not exist", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("Repair() created the missing file")
	}
}

func TestRepairInvalidRange(t *testing.T) {
	cfg := defaultConfig()
	cfg.Range = domain.Range{KeepStart: 915, KeepResumeAt: 720}
	store := &failingStore{}
	e := NewExciser(cfg, store, &recordingLogger{})

	if _, err := e.Repair(context.Background(), "unused"); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("Repair() error = %v, want ErrInvalidRange", err)
	}
}

func TestRepairSaveError(t *testing.T) {
	store := &failingStore{lines: make(domain.Lines, 1000)}
	e := NewExciser(defaultConfig(), store, &recordingLogger{})

	res, err := e.Repair(context.Background(), "globals.css")
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("Repair() error = %v, want disk full", err)
	}
	if res.Written {
		t.Fatal("Repair() reported a write")
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
}

func TestRepairDryRun(t *testing.T) {
	path, _ := writeNumbered(t, 1000)
	before, _ := os.ReadFile(path)

	var diff bytes.Buffer
	cfg := defaultConfig()
	cfg.DryRun = true
	cfg.DiffOut = &diff
	logger := &recordingLogger{}
	e := NewExciser(cfg, fs.NewLineFileStore(false), logger)

	res, err := e.Repair(context.Background(), path)
	if err != nil {
		t.Fatalf("Repair() error = %v", err)
	}
	if res.Written || res.NewLines != 805 {
		t.Fatalf("Repair() result = %+v", res)
	}

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Fatal("dry run modified the file")
	}
	out := diff.String()
	if !strings.Contains(out, "--- "+path) {
		t.Errorf("diff header missing:\n%s", out[:min(len(out), 200)])
	}
	if !strings.Contains(out, "-  .rule-720 { color: red; }") || !strings.Contains(out, "-  .rule-914 { color: red; }") {
		t.Error("diff does not show removed boundary lines")
	}
	if strings.Contains(out, "-  .rule-915 { color: red; }") {
		t.Error("diff removes the first kept line")
	}
	if !logger.has("dry run, file not modified") {
		t.Error("missing dry run diagnostic")
	}
}
