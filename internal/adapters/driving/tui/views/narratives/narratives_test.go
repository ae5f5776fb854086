package narratives

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ronin/internal/core/domain"
)

type stubAnalysis struct {
	result *domain.AnalysisResult
	err    error
}

func (s stubAnalysis) Analyze(_ context.Context) (*domain.AnalysisResult, error) {
	return s.result, s.err
}

func sampleResult(n int) *domain.AnalysisResult {
	r := &domain.AnalysisResult{
		TotalSignals:    9,
		DataSourcesUsed: []string{"CoinGecko"},
		AnalyzedAt:      time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	for i := 0; i < n; i++ {
		r.Narratives = append(r.Narratives, domain.Narrative{
			ID:         string(rune('a' + i)),
			Title:      "Narrative " + string(rune('A'+i)),
			Confidence: 90 - i*10,
			Trend:      domain.TrendEmerging,
		})
	}
	return r
}

func completed(t *testing.T, cmd tea.Cmd) messages.AnalysisCompleted {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if done, ok := c().(messages.AnalysisCompleted); ok {
			return done
		}
	}
	t.Fatal("no analysis command in batch")
	return messages.AnalysisCompleted{}
}

func TestView_LoadingThenResults(t *testing.T) {
	v := NewView(styles.Plain(), nil, stubAnalysis{result: sampleResult(2)})

	done := completed(t, v.Init())
	assert.True(t, v.Loading())
	assert.Contains(t, v.View(), "Collecting signals...")

	v, _ = v.Update(done)

	assert.False(t, v.Loading())
	assert.Len(t, v.Narratives(), 2)
	view := v.View()
	assert.Contains(t, view, "9 signals · sources: CoinGecko")
	assert.Contains(t, view, "> █████████░  90  [emerging]  Narrative A")
}

func TestView_RefreshWhileLoadingIsNoop(t *testing.T) {
	v := NewView(nil, nil, stubAnalysis{})

	require.NotNil(t, v.Refresh())
	assert.Nil(t, v.Refresh())
}

func TestView_Error(t *testing.T) {
	v := NewView(styles.Plain(), nil, stubAnalysis{err: errors.New("timeout")})

	v, _ = v.Update(completed(t, v.Init()))

	assert.EqualError(t, v.Err(), "timeout")
	assert.Contains(t, v.View(), "Analysis failed: timeout")
}

func TestView_NilServiceReportsError(t *testing.T) {
	v := NewView(nil, nil, nil)

	v, _ = v.Update(completed(t, v.Init()))

	assert.Error(t, v.Err())
}

func TestView_EmptyResult(t *testing.T) {
	v := NewView(styles.Plain(), nil, nil)

	v, _ = v.Update(messages.AnalysisCompleted{Result: sampleResult(0)})

	assert.Contains(t, v.View(), "No narratives detected.")
	_, ok := v.Selected()
	assert.False(t, ok)
}

func TestView_Navigation(t *testing.T) {
	v := NewView(styles.Plain(), nil, nil)
	v, _ = v.Update(messages.AnalysisCompleted{Result: sampleResult(3)})

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.SelectedIndex())

	for i := 0; i < 5; i++ {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 2, v.SelectedIndex())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, v.SelectedIndex())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	sel, ok := cmd().(messages.NarrativeSelected)
	require.True(t, ok)
	assert.Equal(t, "Narrative B", sel.Narrative.Title)
}

func TestView_WindowKeepsSelectionVisible(t *testing.T) {
	v := NewView(styles.Plain(), nil, nil)
	v.SetDimensions(80, 9)
	v, _ = v.Update(messages.AnalysisCompleted{Result: sampleResult(8)})

	for i := 0; i < 7; i++ {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	view := v.View()
	assert.Contains(t, view, "Narrative H")
	assert.NotContains(t, view, "Narrative A")
}
