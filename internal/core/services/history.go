package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
	"github.com/custodia-labs/ronin/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads recorded runs from a history store.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// ListRuns returns up to limit runs, newest first.
func (s *HistoryService) ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidInput)
	}
	return s.store.ListRuns(ctx, limit)
}

// GetRun returns a recorded result. "latest" selects the newest run.
func (s *HistoryService) GetRun(ctx context.Context, runID string) (*domain.AnalysisResult, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}
	if strings.EqualFold(runID, "latest") {
		return s.store.LatestRun(ctx)
	}
	return s.store.GetRun(ctx, runID)
}

// NarrativeHistory returns a narrative's confidence over recorded runs, newest first.
func (s *HistoryService) NarrativeHistory(ctx context.Context, narrativeID string, limit int) ([]domain.NarrativePoint, error) {
	narrativeID = strings.TrimSpace(narrativeID)
	if narrativeID == "" {
		return nil, fmt.Errorf("%w: narrative id is required", domain.ErrInvalidInput)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidInput)
	}
	return s.store.NarrativeHistory(ctx, narrativeID, limit)
}
