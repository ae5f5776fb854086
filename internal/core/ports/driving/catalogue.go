package driving

import "github.com/custodia-labs/ronin/internal/core/domain"

// CatalogueService exposes the narrative pattern catalogue.
type CatalogueService interface {
	// List returns every pattern in catalogue order.
	List() []domain.NarrativePattern

	// Get returns a single pattern.
	// Returns domain.ErrNotFound if no pattern has the ID.
	Get(id string) (*domain.NarrativePattern, error)
}
