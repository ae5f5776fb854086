package driving

import (
	"context"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// HistoryService reads recorded analysis runs.
type HistoryService interface {
	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// GetRun returns a recorded result, or domain.ErrNotFound.
	GetRun(ctx context.Context, runID string) (*domain.AnalysisResult, error)

	// NarrativeHistory returns a narrative's confidence over recorded runs, newest first.
	NarrativeHistory(ctx context.Context, narrativeID string, limit int) ([]domain.NarrativePoint, error)
}
