package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_narratives tool.
type AnalyzeInput struct {
	MinConfidence int `json:"min_confidence,omitempty" jsonschema:"only return narratives at or above this confidence (0-100)"`
	Limit         int `json:"limit,omitempty" jsonschema:"maximum number of narratives to return (0 = all)"`
}

// AnalyzeOutput is the output schema for the analyze_narratives tool.
type AnalyzeOutput struct {
	Narratives      []NarrativeOutput `json:"narratives"`
	TotalSignals    int               `json:"total_signals"`
	DataSourcesUsed []string          `json:"data_sources_used"`
	AnalyzedAt      string            `json:"analyzed_at"`
	AgentVersion    string            `json:"agent_version"`
}

// NarrativeOutput is one detected narrative.
type NarrativeOutput struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Summary     string            `json:"summary"`
	Category    string            `json:"category"`
	Confidence  int               `json:"confidence"`
	Trend       string            `json:"trend"`
	SignalCount int               `json:"signal_count"`
	Signals     []SignalOutput    `json:"signals"`
	BuildIdeas  []BuildIdeaOutput `json:"build_ideas"`
}

// SignalOutput is a matched signal without its display data points.
type SignalOutput struct {
	Source   string  `json:"source"`
	Category string  `json:"category"`
	Title    string  `json:"title"`
	Strength float64 `json:"strength"`
}

// BuildIdeaOutput is a build suggestion attached to a narrative.
type BuildIdeaOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Feasibility string `json:"feasibility"`
	Effort      string `json:"estimated_effort"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolAnalyze,
		Description: "Collect live Solana ecosystem signals (DeFi TVL, GitHub activity, token markets) " +
			"and return detected narratives ranked by confidence, with build ideas",
	}, s.handleAnalyze)
}

// handleAnalyze handles the analyze_narratives tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	if input.MinConfidence < 0 || input.MinConfidence > 100 {
		return nil, AnalyzeOutput{}, fmt.Errorf("%w: min_confidence must be between 0 and 100", domain.ErrInvalidInput)
	}

	result, err := s.ports.Analysis.Analyze(ctx)
	if err != nil {
		return nil, AnalyzeOutput{}, fmt.Errorf("analysis failed: %w", err)
	}

	narratives := result.FilterByConfidence(input.MinConfidence)
	if input.Limit > 0 && len(narratives) > input.Limit {
		narratives = narratives[:input.Limit]
	}

	output := AnalyzeOutput{
		Narratives:      make([]NarrativeOutput, len(narratives)),
		TotalSignals:    result.TotalSignals,
		DataSourcesUsed: result.DataSourcesUsed,
		AnalyzedAt:      result.AnalyzedAt.UTC().Format(time.RFC3339),
		AgentVersion:    result.AgentVersion,
	}
	for i := range narratives {
		output.Narratives[i] = toNarrativeOutput(&narratives[i])
	}

	return nil, output, nil
}

func toNarrativeOutput(n *domain.Narrative) NarrativeOutput {
	out := NarrativeOutput{
		ID:          n.ID,
		Title:       n.Title,
		Summary:     n.Summary,
		Category:    n.Category,
		Confidence:  n.Confidence,
		Trend:       string(n.Trend),
		SignalCount: len(n.Signals),
		Signals:     make([]SignalOutput, len(n.Signals)),
		BuildIdeas:  make([]BuildIdeaOutput, len(n.BuildIdeas)),
	}
	for i, sig := range n.Signals {
		out.Signals[i] = SignalOutput{
			Source:   sig.Source.String(),
			Category: sig.Category,
			Title:    sig.Title,
			Strength: sig.Strength,
		}
	}
	for i, idea := range n.BuildIdeas {
		out.BuildIdeas[i] = BuildIdeaOutput{
			Title:       idea.Title,
			Description: idea.Description,
			Feasibility: string(idea.Feasibility),
			Effort:      idea.EstimatedEffort,
		}
	}
	return out
}
