package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

type mockAnalysis struct {
	result *domain.AnalysisResult
	err    error
	calls  int
}

func (m *mockAnalysis) Analyze(ctx context.Context) (*domain.AnalysisResult, error) {
	m.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.result, m.err
}

func testResult() *domain.AnalysisResult {
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return &domain.AnalysisResult{
		Narratives: []domain.Narrative{
			{
				ID:          "ai-agents",
				Title:       "AI Agents on Solana",
				Description: "Autonomous agents transacting on-chain.",
				Confidence:  82,
				Trend:       domain.TrendAccelerating,
				Category:    "AI",
				DetectedAt:  at,
				Signals: []domain.Signal{
					{Source: domain.SourceGitHub, Title: "AI repos", Strength: 70},
				},
			},
			{
				ID:         "depin",
				Title:      "DePIN Expansion",
				Confidence: 61,
				Trend:      domain.TrendEmerging,
				Category:   "DePIN",
				DetectedAt: at,
			},
		},
		TotalSignals:    12,
		DataSourcesUsed: []string{"GitHub", "DeFi Llama"},
		AnalyzedAt:      at,
		AgentVersion:    domain.AgentVersion,
	}
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
