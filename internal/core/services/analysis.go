package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
	"github.com/custodia-labs/ronin/internal/core/ports/driving"
	"github.com/custodia-labs/ronin/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs the collect, match, score and assemble pipeline.
// It holds no per-run state and is safe for concurrent use.
type AnalysisService struct {
	collector *Collector
	catalogue driven.PatternCatalogue
	history   driven.HistoryStore
	keepRuns  int
	now       func() time.Time
	newID     func() string
}

// AnalysisOption configures an AnalysisService.
type AnalysisOption func(*AnalysisService)

// WithClock overrides the time source used to stamp results.
func WithClock(now func() time.Time) AnalysisOption {
	return func(s *AnalysisService) {
		s.now = now
	}
}

// WithRunIDs overrides the run ID generator.
func WithRunIDs(newID func() string) AnalysisOption {
	return func(s *AnalysisService) {
		s.newID = newID
	}
}

// WithHistory records every completed run in store, keeping the newest keep runs.
func WithHistory(store driven.HistoryStore, keep int) AnalysisOption {
	return func(s *AnalysisService) {
		s.history = store
		s.keepRuns = keep
	}
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(
	collector *Collector,
	catalogue driven.PatternCatalogue,
	opts ...AnalysisOption,
) *AnalysisService {
	s := &AnalysisService{
		collector: collector,
		catalogue: catalogue,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze collects signals from every source and builds the ranked narratives.
// The only error is the context's own, when it ends before collection finishes;
// the partial collection is discarded.
func (s *AnalysisService) Analyze(ctx context.Context) (*domain.AnalysisResult, error) {
	runID := s.newID()
	logger.Section("Analysis " + runID)

	collected := s.collector.Collect(ctx)
	if err := ctx.Err(); err != nil {
		logger.Warn("analysis %s: discarded after %d signals: %v", runID, len(collected.Signals), err)
		return nil, err
	}

	result := s.AnalyzeSignals(collected.Signals, collected.Sources, s.now())
	result.RunID = runID

	logger.Info("analysis %s: %d signals from %v, %d narratives",
		runID, result.TotalSignals, result.DataSourcesUsed, len(result.Narratives))

	s.record(ctx, result)
	return result, nil
}

// record saves a run to the history store. Failures are logged, never returned.
func (s *AnalysisService) record(ctx context.Context, result *domain.AnalysisResult) {
	if s.history == nil {
		return
	}
	if err := s.history.SaveRun(ctx, result); err != nil {
		logger.Warn("analysis %s: record history: %v", result.RunID, err)
		return
	}
	if s.keepRuns > 0 {
		if err := s.history.PruneRuns(ctx, s.keepRuns); err != nil {
			logger.Warn("analysis %s: prune history: %v", result.RunID, err)
		}
	}
}

// AnalyzeSignals matches, scores and assembles a fixed signal set.
// The result depends only on its arguments and the catalogue.
func (s *AnalysisService) AnalyzeSignals(signals []domain.Signal, sources []string, now time.Time) *domain.AnalysisResult {
	matches := Match(s.catalogue.Patterns(), signals)

	narratives := make([]domain.Narrative, 0, len(matches))
	for _, m := range matches {
		score := ScoreSignals(m.Signals)
		logger.Debug("pattern %s: %d signals, mean %.1f, %d sources -> confidence %d (%s)",
			m.Pattern.ID, score.SignalCount, score.MeanStrength, score.DistinctSources, score.Confidence, score.Trend)
		narratives = append(narratives, buildNarrative(m, score, now))
	}

	sort.SliceStable(narratives, func(i, j int) bool {
		return narratives[i].Confidence > narratives[j].Confidence
	})

	if sources == nil {
		sources = []string{}
	}

	return &domain.AnalysisResult{
		Narratives:      narratives,
		TotalSignals:    len(signals),
		DataSourcesUsed: sources,
		AnalyzedAt:      now,
		AgentVersion:    domain.AgentVersion,
	}
}

func buildNarrative(m PatternMatch, score Score, now time.Time) domain.Narrative {
	p := m.Pattern
	return domain.Narrative{
		ID:          p.ID,
		Title:       p.Title,
		Summary:     p.Summary(),
		Description: p.Description,
		Signals:     m.Signals,
		Confidence:  score.Confidence,
		Trend:       score.Trend,
		BuildIdeas:  p.BuildIdeas,
		DetectedAt:  now,
		Category:    p.PrimaryCategory(),
	}
}
