package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

func TestServer_handleAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all narratives", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{result: testResult()}})
		require.NoError(t, err)

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{})

		require.NoError(t, err)
		require.Len(t, output.Narratives, 3)
		assert.Equal(t, 12, output.TotalSignals)
		assert.Equal(t, []string{"DeFi Llama", "Solana RPC", "GitHub"}, output.DataSourcesUsed)
		assert.Equal(t, "2026-03-14T12:00:00Z", output.AnalyzedAt)
		assert.Equal(t, domain.AgentVersion, output.AgentVersion)

		first := output.Narratives[0]
		assert.Equal(t, "ai-agents", first.ID)
		assert.Equal(t, "accelerating", first.Trend)
		assert.Equal(t, 1, first.SignalCount)
		assert.Equal(t, "github", first.Signals[0].Source)
		require.Len(t, first.BuildIdeas, 1)
		assert.Equal(t, "high", first.BuildIdeas[0].Feasibility)
		assert.Equal(t, "2-3 weeks", first.BuildIdeas[0].Effort)
	})

	t.Run("filters by confidence and limit", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{result: testResult()}})
		require.NoError(t, err)

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{MinConfidence: 50})
		require.NoError(t, err)
		assert.Len(t, output.Narratives, 2)
		assert.Equal(t, 12, output.TotalSignals)

		_, output, err = server.handleAnalyze(ctx, nil, AnalyzeInput{Limit: 1})
		require.NoError(t, err)
		require.Len(t, output.Narratives, 1)
		assert.Equal(t, "ai-agents", output.Narratives[0].ID)
	})

	t.Run("rejects out of range confidence", func(t *testing.T) {
		mock := &mockAnalysisService{result: testResult()}
		server, err := NewServer(&Ports{Analysis: mock})
		require.NoError(t, err)

		_, _, err = server.handleAnalyze(ctx, nil, AnalyzeInput{MinConfidence: 150})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, mock.calls)
	})

	t.Run("returns error on analysis failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{err: errors.New("context canceled")}})
		require.NoError(t, err)

		_, _, err = server.handleAnalyze(ctx, nil, AnalyzeInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "analysis failed")
	})
}
