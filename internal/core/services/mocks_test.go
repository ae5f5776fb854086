package services

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// mockSource is a configurable SignalSource.
type mockSource struct {
	kind    domain.SourceKind
	labels  []string
	signals []domain.Signal
	panics  bool
	block   bool
	calls   atomic.Int32
}

func (m *mockSource) Kind() domain.SourceKind { return m.kind }

func (m *mockSource) Labels() []string { return m.labels }

func (m *mockSource) Collect(ctx context.Context) []domain.Signal {
	m.calls.Add(1)
	if m.panics {
		panic("upstream exploded")
	}
	if m.block {
		<-ctx.Done()
		return nil
	}
	return m.signals
}

// mockCatalogue is a fixed PatternCatalogue.
type mockCatalogue struct {
	patterns []domain.NarrativePattern
}

func (m *mockCatalogue) Patterns() []domain.NarrativePattern { return m.patterns }

func (m *mockCatalogue) Get(id string) (*domain.NarrativePattern, bool) {
	for i := range m.patterns {
		if strings.EqualFold(m.patterns[i].ID, id) {
			return &m.patterns[i], true
		}
	}
	return nil, false
}

func sig(source domain.SourceKind, strength float64, title string) domain.Signal {
	return domain.Signal{
		Source:   source,
		Category: "Test",
		Title:    title,
		Strength: strength,
	}
}

// mockHistoryStore is an in-memory HistoryStore.
type mockHistoryStore struct {
	runs      []*domain.AnalysisResult
	saveErr   error
	pruneErr  error
	pruneKeep []int
}

func (m *mockHistoryStore) SaveRun(_ context.Context, result *domain.AnalysisResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append([]*domain.AnalysisResult{result}, m.runs...)
	return nil
}

func (m *mockHistoryStore) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	out := make([]domain.RunSummary, 0, len(m.runs))
	for _, r := range m.runs {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, r.Summarise())
	}
	return out, nil
}

func (m *mockHistoryStore) GetRun(_ context.Context, runID string) (*domain.AnalysisResult, error) {
	for _, r := range m.runs {
		if r.RunID == runID {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryStore) LatestRun(_ context.Context) (*domain.AnalysisResult, error) {
	if len(m.runs) == 0 {
		return nil, domain.ErrNotFound
	}
	return m.runs[0], nil
}

func (m *mockHistoryStore) NarrativeHistory(_ context.Context, narrativeID string, limit int) ([]domain.NarrativePoint, error) {
	var points []domain.NarrativePoint
	for _, r := range m.runs {
		for _, n := range r.Narratives {
			if !strings.EqualFold(n.ID, narrativeID) {
				continue
			}
			points = append(points, domain.NarrativePoint{
				RunID: r.RunID, AnalyzedAt: r.AnalyzedAt,
				Confidence: n.Confidence, Trend: n.Trend, SignalCount: len(n.Signals),
			})
		}
		if limit > 0 && len(points) == limit {
			break
		}
	}
	return points, nil
}

func (m *mockHistoryStore) PruneRuns(_ context.Context, keep int) error {
	m.pruneKeep = append(m.pruneKeep, keep)
	if m.pruneErr != nil {
		return m.pruneErr
	}
	if len(m.runs) > keep {
		m.runs = m.runs[:keep]
	}
	return nil
}
