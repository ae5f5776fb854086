package catalogue

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// patternFile is the on-disk layout of a pattern file.
type patternFile struct {
	Patterns []patternEntry `toml:"patterns"`
}

type patternEntry struct {
	ID          string      `toml:"id"`
	Title       string      `toml:"title"`
	Keywords    []string    `toml:"keywords"`
	Categories  []string    `toml:"categories"`
	MinSignals  int         `toml:"min_signals"`
	Description string      `toml:"description"`
	BuildIdeas  []ideaEntry `toml:"build_ideas"`
}

type ideaEntry struct {
	Title           string `toml:"title"`
	Description     string `toml:"description"`
	Feasibility     string `toml:"feasibility"`
	EstimatedEffort string `toml:"estimated_effort"`
	TargetAudience  string `toml:"target_audience"`
	Integration     string `toml:"integration"`
}

// LoadFile reads and validates a TOML pattern file.
// Unknown keys are rejected so that typos do not silently drop hints.
func LoadFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern file: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads a TOML pattern table.
func Decode(r io.Reader) (*Catalogue, error) {
	var file patternFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&file); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPattern, strict.String())
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidPattern, err)
	}

	patterns := make([]domain.NarrativePattern, 0, len(file.Patterns))
	for _, e := range file.Patterns {
		patterns = append(patterns, e.toDomain())
	}
	return New(patterns)
}

// Encode writes patterns in the pattern file layout.
func Encode(w io.Writer, patterns []domain.NarrativePattern) error {
	file := patternFile{Patterns: make([]patternEntry, 0, len(patterns))}
	for i := range patterns {
		file.Patterns = append(file.Patterns, fromDomain(&patterns[i]))
	}
	enc := toml.NewEncoder(w).SetIndentTables(true)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode patterns: %w", err)
	}
	return nil
}

func (e patternEntry) toDomain() domain.NarrativePattern {
	ideas := make([]domain.BuildIdea, 0, len(e.BuildIdeas))
	for _, b := range e.BuildIdeas {
		ideas = append(ideas, domain.BuildIdea{
			Title:           b.Title,
			Description:     b.Description,
			Feasibility:     domain.Feasibility(b.Feasibility),
			EstimatedEffort: b.EstimatedEffort,
			TargetAudience:  b.TargetAudience,
			Integration:     b.Integration,
		})
	}
	return domain.NarrativePattern{
		ID:          e.ID,
		Title:       e.Title,
		Keywords:    e.Keywords,
		Categories:  e.Categories,
		MinSignals:  e.MinSignals,
		Description: e.Description,
		BuildIdeas:  ideas,
	}
}

func fromDomain(p *domain.NarrativePattern) patternEntry {
	ideas := make([]ideaEntry, 0, len(p.BuildIdeas))
	for _, b := range p.BuildIdeas {
		ideas = append(ideas, ideaEntry{
			Title:           b.Title,
			Description:     b.Description,
			Feasibility:     string(b.Feasibility),
			EstimatedEffort: b.EstimatedEffort,
			TargetAudience:  b.TargetAudience,
			Integration:     b.Integration,
		})
	}
	return patternEntry{
		ID:          p.ID,
		Title:       p.Title,
		Keywords:    p.Keywords,
		Categories:  p.Categories,
		MinSignals:  p.MinSignals,
		Description: p.Description,
		BuildIdeas:  ideas,
	}
}
