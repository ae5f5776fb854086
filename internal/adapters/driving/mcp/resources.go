package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for ronin resources.
	uriScheme = "ronin://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "patterns",
		Name:        "patterns",
		Description: "Narrative patterns the analysis matches signals against",
		MIMEType:    "application/json",
	}, s.handlePatternsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "patterns/{patternId}",
		Name:        "pattern",
		Description: "A single narrative pattern with keywords and build ideas",
		MIMEType:    "application/json",
	}, s.handlePatternResource)
}

// handlePatternsResource returns a summary of every pattern.
func (s *Server) handlePatternsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalogue == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	type patternInfo struct {
		ID         string   `json:"id"`
		Title      string   `json:"title"`
		Categories []string `json:"categories"`
		MinSignals int      `json:"min_signals"`
		URI        string   `json:"uri"`
	}

	patterns := s.ports.Catalogue.List()
	infos := make([]patternInfo, len(patterns))
	for i := range patterns {
		infos[i] = patternInfo{
			ID:         patterns[i].ID,
			Title:      patterns[i].Title,
			Categories: patterns[i].Categories,
			MinSignals: patterns[i].MinSignals,
			URI:        uriScheme + "patterns/" + patterns[i].ID,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling patterns: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handlePatternResource returns one pattern in full.
func (s *Server) handlePatternResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalogue == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractPatternID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	pattern, err := s.ports.Catalogue.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting pattern: %w", err)
	}

	data, err := json.MarshalIndent(pattern, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling pattern: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractPatternID extracts the pattern ID from a URI like ronin://patterns/{patternId}.
func extractPatternID(uri string) string {
	const prefix = uriScheme + "patterns/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
