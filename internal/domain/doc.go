// Package domain contains the core value types for excise.
//
// This package has no dependencies on infrastructure concerns (file system,
// logging, configuration) and contains only the splice rules.
//
// # Types
//
//   - [Lines]: A file held in memory as an ordered sequence of lines, each
//     keeping its original terminator
//   - [Range]: The half-open interval of line indices to discard
//
// Indices are 0-based throughout.
package domain
