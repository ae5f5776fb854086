// Package tui provides an interactive terminal user interface for ronin.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ronin/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Analysis runs narrative detection passes.
	Analysis driving.AnalysisService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(analysis driving.AnalysisService) *Ports {
	return &Ports{Analysis: analysis}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
