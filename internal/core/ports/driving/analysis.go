package driving

import (
	"context"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// AnalysisService runs narrative analysis passes.
type AnalysisService interface {
	// Analyze collects signals from every source, matches them against the
	// pattern catalogue and returns the scored, ranked narratives.
	// Source failures never surface here; the only error is a cancelled context.
	Analyze(ctx context.Context) (*domain.AnalysisResult, error)
}
