package driven

import "github.com/custodia-labs/ronin/internal/core/domain"

// PatternCatalogue provides the immutable set of narrative patterns.
// The order of Patterns is the order narratives are built in before sorting,
// so it decides ties between equally confident narratives.
type PatternCatalogue interface {
	// Patterns returns every pattern in catalogue order.
	// Callers must not modify the returned patterns.
	Patterns() []domain.NarrativePattern

	// Get returns the pattern with the given ID.
	Get(id string) (*domain.NarrativePattern, bool)
}
