// Package domain defines the core business entities for ronin.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Signal: A normalised observation taken from one upstream feed
//   - DataPoint: A display metric attached to a Signal
//   - NarrativePattern: A static, hand-authored narrative definition
//   - Narrative: A pattern backed by enough matching signals, with a score
//   - AnalysisResult: The ranked output of one analysis pass
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
