package services

import (
	"fmt"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
	"github.com/custodia-labs/ronin/internal/core/ports/driving"
)

// Ensure CatalogueService implements the interface.
var _ driving.CatalogueService = (*CatalogueService)(nil)

// CatalogueService exposes the pattern catalogue to outer surfaces.
type CatalogueService struct {
	catalogue driven.PatternCatalogue
}

// NewCatalogueService creates a catalogue service.
func NewCatalogueService(catalogue driven.PatternCatalogue) *CatalogueService {
	return &CatalogueService{catalogue: catalogue}
}

// List returns every pattern in catalogue order.
func (s *CatalogueService) List() []domain.NarrativePattern {
	return s.catalogue.Patterns()
}

// Get returns the pattern with the given ID.
func (s *CatalogueService) Get(id string) (*domain.NarrativePattern, error) {
	p, ok := s.catalogue.Get(id)
	if !ok {
		return nil, fmt.Errorf("pattern %q: %w", id, domain.ErrNotFound)
	}
	return p, nil
}
