package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	result *domain.AnalysisResult
	err    error
	calls  int
}

func (m *mockAnalysisService) Analyze(_ context.Context) (*domain.AnalysisResult, error) {
	m.calls++
	return m.result, m.err
}

// mockCatalogueService is a mock implementation of driving.CatalogueService.
type mockCatalogueService struct {
	patterns []domain.NarrativePattern
	err      error
}

func (m *mockCatalogueService) List() []domain.NarrativePattern {
	return m.patterns
}

func (m *mockCatalogueService) Get(id string) (*domain.NarrativePattern, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.patterns {
		if m.patterns[i].ID == id {
			p := m.patterns[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("pattern %q: %w", id, domain.ErrNotFound)
}

var testTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Narratives: []domain.Narrative{
			{
				ID:         "ai-agents",
				Title:      "AI Agents on Solana",
				Summary:    "Agents...",
				Category:   "AI Agents",
				Confidence: 82,
				Trend:      domain.TrendAccelerating,
				Signals: []domain.Signal{
					{Source: domain.SourceGitHub, Category: "AI Agents", Title: "AI Agents: 4 active repositories on Solana", Strength: 90},
				},
				BuildIdeas: []domain.BuildIdea{
					{Title: "Agent wallet", Feasibility: domain.FeasibilityHigh, EstimatedEffort: "2-3 weeks"},
				},
				DetectedAt: testTime,
			},
			{ID: "defi-growth", Title: "DeFi", Confidence: 55, Trend: domain.TrendMature, DetectedAt: testTime},
			{ID: "market-momentum", Title: "Momentum", Confidence: 30, Trend: domain.TrendEmerging, DetectedAt: testTime},
		},
		TotalSignals:    12,
		DataSourcesUsed: []string{"DeFi Llama", "Solana RPC", "GitHub"},
		AnalyzedAt:      testTime,
		AgentVersion:    domain.AgentVersion,
	}
}

func testPatterns() []domain.NarrativePattern {
	return []domain.NarrativePattern{
		{ID: "ai-agents", Title: "AI Agents on Solana", Categories: []string{"AI Agents"}, MinSignals: 2, Keywords: []string{"agent"}},
		{ID: "defi-growth", Title: "DeFi", Categories: []string{"DeFi"}, MinSignals: 2},
	}
}
