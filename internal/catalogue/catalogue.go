package catalogue

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
)

// Ensure Catalogue implements the interface.
var _ driven.PatternCatalogue = (*Catalogue)(nil)

// Catalogue is a validated, read-only set of narrative patterns.
type Catalogue struct {
	patterns []domain.NarrativePattern
	byID     map[string]int
}

// Builtin returns the catalogue shipped with the binary.
func Builtin() *Catalogue {
	c, err := New(builtinPatterns())
	if err != nil {
		panic(fmt.Sprintf("builtin catalogue is invalid: %v", err))
	}
	return c
}

// Load returns the catalogue at path, or the built-in catalogue when path is empty.
func Load(path string) (*Catalogue, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadFile(path)
}

// New validates patterns and builds a catalogue from a private copy of them.
// Keywords are trimmed and lowercased.
func New(patterns []domain.NarrativePattern) (*Catalogue, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: catalogue has no patterns", domain.ErrInvalidPattern)
	}

	c := &Catalogue{
		patterns: make([]domain.NarrativePattern, 0, len(patterns)),
		byID:     make(map[string]int, len(patterns)),
	}
	for i := range patterns {
		p, err := normalise(patterns[i])
		if err != nil {
			return nil, err
		}
		key := strings.ToLower(p.ID)
		if _, dup := c.byID[key]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", domain.ErrInvalidPattern, p.ID)
		}
		c.byID[key] = len(c.patterns)
		c.patterns = append(c.patterns, p)
	}
	return c, nil
}

// Patterns returns every pattern in catalogue order.
// The slice is capped so appends never write into the catalogue.
func (c *Catalogue) Patterns() []domain.NarrativePattern {
	return c.patterns[:len(c.patterns):len(c.patterns)]
}

// Get returns a copy of the pattern with the given ID, ignoring case.
func (c *Catalogue) Get(id string) (*domain.NarrativePattern, bool) {
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, false
	}
	p := c.patterns[i]
	return &p, true
}

// Len returns the number of patterns.
func (c *Catalogue) Len() int {
	return len(c.patterns)
}

func normalise(p domain.NarrativePattern) (domain.NarrativePattern, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return p, fmt.Errorf("%w: pattern id is empty", domain.ErrInvalidPattern)
	}
	if strings.TrimSpace(p.Title) == "" {
		return p, fmt.Errorf("%w: pattern %q: title is empty", domain.ErrInvalidPattern, p.ID)
	}
	if p.MinSignals < 1 {
		return p, fmt.Errorf("%w: pattern %q: min_signals must be at least 1", domain.ErrInvalidPattern, p.ID)
	}

	keywords := make([]string, 0, len(p.Keywords))
	for _, kw := range p.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			return p, fmt.Errorf("%w: pattern %q: empty keyword", domain.ErrInvalidPattern, p.ID)
		}
		keywords = append(keywords, kw)
	}
	p.Keywords = keywords

	categories := make([]string, 0, len(p.Categories))
	for _, cat := range p.Categories {
		cat = strings.TrimSpace(cat)
		if cat == "" {
			return p, fmt.Errorf("%w: pattern %q: empty category", domain.ErrInvalidPattern, p.ID)
		}
		categories = append(categories, cat)
	}
	p.Categories = categories

	ideas := make([]domain.BuildIdea, len(p.BuildIdeas))
	copy(ideas, p.BuildIdeas)
	for i := range ideas {
		if !ideas[i].Feasibility.IsValid() {
			return p, fmt.Errorf("%w: pattern %q: build idea %q: feasibility %q",
				domain.ErrInvalidPattern, p.ID, ideas[i].Title, ideas[i].Feasibility)
		}
	}
	p.BuildIdeas = ideas

	return p, nil
}
