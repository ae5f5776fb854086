package mcp

import (
	"github.com/custodia-labs/ronin/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Analysis runs narrative analysis passes.
	Analysis driving.AnalysisService

	// Catalogue exposes the narrative patterns. Optional; without it the
	// pattern resources are empty.
	Catalogue driving.CatalogueService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
