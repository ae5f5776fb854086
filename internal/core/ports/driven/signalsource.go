package driven

import (
	"context"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// SignalSource collects signals from one upstream feed family
// (on-chain, GitHub, market).
//
// Collect never fails: an unreachable or malformed upstream yields an empty
// or partial slice and the cause is logged by the implementation.
// Implementations must be safe to call concurrently with other sources.
type SignalSource interface {
	// Kind returns the source kind every produced signal carries.
	Kind() domain.SourceKind

	// Labels returns the human-readable feed names credited in
	// AnalysisResult.DataSourcesUsed when Collect returns at least one signal.
	// A source backed by several feeds returns one label per feed.
	Labels() []string

	// Collect fetches upstream data and turns it into signals.
	// Signals carry Timestamp set to the collection time.
	Collect(ctx context.Context) []domain.Signal
}
