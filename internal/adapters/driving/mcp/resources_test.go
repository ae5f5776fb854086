package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPatternID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid pattern URI", uri: "ronin://patterns/ai-agents", expected: "ai-agents"},
		{name: "invalid prefix", uri: "file://patterns/ai-agents", expected: ""},
		{name: "nested path", uri: "ronin://patterns/ai-agents/ideas", expected: ""},
		{name: "list URI", uri: "ronin://patterns", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPatternID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handlePatternsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil catalogue returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
		require.NoError(t, err)

		result, err := server.handlePatternsResource(ctx, makeReadResourceRequest("ronin://patterns"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists patterns with URIs", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Analysis:  &mockAnalysisService{},
			Catalogue: &mockCatalogueService{patterns: testPatterns()},
		})
		require.NoError(t, err)

		result, err := server.handlePatternsResource(ctx, makeReadResourceRequest("ronin://patterns"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, text, `"id": "ai-agents"`)
		assert.Contains(t, text, `"uri": "ronin://patterns/defi-growth"`)
		assert.Contains(t, text, `"min_signals": 2`)
	})
}

func TestServer_handlePatternResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns one pattern", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Analysis:  &mockAnalysisService{},
			Catalogue: &mockCatalogueService{patterns: testPatterns()},
		})
		require.NoError(t, err)

		result, err := server.handlePatternResource(ctx, makeReadResourceRequest("ronin://patterns/ai-agents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"keywords": [`)
		assert.Contains(t, result.Contents[0].Text, `"minSignals": 2`)
	})

	t.Run("unknown pattern is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Analysis:  &mockAnalysisService{},
			Catalogue: &mockCatalogueService{patterns: testPatterns()},
		})
		require.NoError(t, err)

		_, err = server.handlePatternResource(ctx, makeReadResourceRequest("ronin://patterns/nope"))

		require.Error(t, err)
	})

	t.Run("nil catalogue is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
		require.NoError(t, err)

		_, err = server.handlePatternResource(ctx, makeReadResourceRequest("ronin://patterns/ai-agents"))

		require.Error(t, err)
	})

	t.Run("invalid URI is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Analysis:  &mockAnalysisService{},
			Catalogue: &mockCatalogueService{patterns: testPatterns()},
		})
		require.NoError(t, err)

		_, err = server.handlePatternResource(ctx, makeReadResourceRequest("ronin://other/ai-agents"))

		require.Error(t, err)
	})

	t.Run("wraps lookup failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Analysis:  &mockAnalysisService{},
			Catalogue: &mockCatalogueService{err: errors.New("disk gone")},
		})
		require.NoError(t, err)

		_, err = server.handlePatternResource(ctx, makeReadResourceRequest("ronin://patterns/ai-agents"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting pattern")
	})
}
