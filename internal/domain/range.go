package domain

import "fmt"

// Range is the half-open interval [KeepStart, KeepResumeAt) of line
// indices to discard. Lines before KeepStart and from KeepResumeAt on
// are kept.
type Range struct {
	KeepStart    int
	KeepResumeAt int
}

// NewRange creates a Range and validates its bounds.
func NewRange(keepStart, keepResumeAt int) (Range, error) {
	r := Range{KeepStart: keepStart, KeepResumeAt: keepResumeAt}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate checks that both bounds are non-negative and KeepStart < KeepResumeAt.
func (r Range) Validate() error {
	if r.KeepStart < 0 || r.KeepResumeAt < 0 {
		return fmt.Errorf("%w: negative bound in [%d, %d)", ErrInvalidRange, r.KeepStart, r.KeepResumeAt)
	}
	if r.KeepStart >= r.KeepResumeAt {
		return fmt.Errorf("%w: keep-start %d must be less than resume-at %d", ErrInvalidRange, r.KeepStart, r.KeepResumeAt)
	}
	return nil
}

// Width returns the number of lines the range discards.
func (r Range) Width() int {
	return r.KeepResumeAt - r.KeepStart
}

// LastExcised returns the index of the last discarded line.
func (r Range) LastExcised() int {
	return r.KeepResumeAt - 1
}

// Fits reports whether the range lies within a file of n lines.
func (r Range) Fits(n int) bool {
	return r.KeepResumeAt <= n
}

// Splice returns a new sequence made of lines[:KeepStart] followed by
// lines[KeepResumeAt:]. The input is not modified.
func (r Range) Splice(lines Lines) (Lines, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if !r.Fits(len(lines)) {
		return nil, fmt.Errorf("%w: resume-at %d, file has %d lines", ErrRangeOutOfBounds, r.KeepResumeAt, len(lines))
	}

	out := make(Lines, 0, len(lines)-r.Width())
	out = append(out, lines[:r.KeepStart]...)
	out = append(out, lines[r.KeepResumeAt:]...)

	if len(out) != len(lines)-r.Width() {
		return nil, fmt.Errorf("excise: splice produced %d lines, want %d", len(out), len(lines)-r.Width())
	}
	return out, nil
}

// String formats the range as a half-open interval.
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.KeepStart, r.KeepResumeAt)
}
