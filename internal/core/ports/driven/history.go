package driven

import (
	"context"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// HistoryStore persists completed analysis runs.
type HistoryStore interface {
	// SaveRun records a result. Saving the same run ID twice replaces it.
	SaveRun(ctx context.Context, result *domain.AnalysisResult) error

	// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// GetRun returns a recorded result, or domain.ErrNotFound.
	GetRun(ctx context.Context, runID string) (*domain.AnalysisResult, error)

	// LatestRun returns the newest recorded result, or domain.ErrNotFound.
	LatestRun(ctx context.Context) (*domain.AnalysisResult, error)

	// NarrativeHistory returns a narrative's points, newest first.
	NarrativeHistory(ctx context.Context, narrativeID string, limit int) ([]domain.NarrativePoint, error)

	// PruneRuns deletes all but the newest keep runs.
	PruneRuns(ctx context.Context, keep int) error
}
