package domain

import "errors"

// Domain errors represent error conditions in the excise domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrTooShort is returned when the file has fewer lines than the
	// minimum expected length. The file is left untouched.
	ErrTooShort = errors.New("excise: file is smaller than expected")

	// ErrRangeOutOfBounds is returned when the range extends past the end
	// of the file.
	ErrRangeOutOfBounds = errors.New("excise: range exceeds file length")

	// ErrInvalidRange is returned when the range bounds are negative or
	// not strictly increasing.
	ErrInvalidRange = errors.New("excise: invalid range")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("excise: file is not valid UTF-8")
)
