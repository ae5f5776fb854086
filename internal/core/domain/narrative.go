package domain

import (
	"strings"
	"time"
)

// AgentVersion tags every AnalysisResult with the version of the analysis logic.
const AgentVersion = "ronin-0.1.0"

// DefaultCategory is used when a pattern declares no categories.
const DefaultCategory = "General"

// SummaryLength is the number of characters kept in a narrative summary.
const SummaryLength = 120

// summaryEllipsis is appended to every truncated summary.
const summaryEllipsis = "..."

// Trend is a coarse lifecycle classification of a narrative.
type Trend string

// Known trends. TrendDeclining is part of the model but no scorer rule produces it.
const (
	TrendEmerging     Trend = "emerging"
	TrendAccelerating Trend = "accelerating"
	TrendMature       Trend = "mature"
	TrendDeclining    Trend = "declining"
)

// AllTrends returns every trend value.
func AllTrends() []Trend {
	return []Trend{TrendEmerging, TrendAccelerating, TrendMature, TrendDeclining}
}

// IsValid returns true if the trend is recognised.
func (t Trend) IsValid() bool {
	switch t {
	case TrendEmerging, TrendAccelerating, TrendMature, TrendDeclining:
		return true
	default:
		return false
	}
}

// Feasibility rates how practical a build idea is.
type Feasibility string

// Feasibility levels.
const (
	FeasibilityHigh   Feasibility = "high"
	FeasibilityMedium Feasibility = "medium"
	FeasibilityLow    Feasibility = "low"
)

// IsValid returns true if the feasibility level is recognised.
func (f Feasibility) IsValid() bool {
	switch f {
	case FeasibilityHigh, FeasibilityMedium, FeasibilityLow:
		return true
	default:
		return false
	}
}

// BuildIdea is a static suggestion attached to a narrative pattern.
// It is carried verbatim into every narrative produced from that pattern.
type BuildIdea struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Feasibility     Feasibility `json:"feasibility"`
	EstimatedEffort string      `json:"estimatedEffort"`
	TargetAudience  string      `json:"targetAudience"`
	Integration     string      `json:"solanaIntegration"`
}

// NarrativePattern is a hand-authored narrative definition.
// Patterns are never mutated at runtime.
type NarrativePattern struct {
	// ID uniquely identifies the pattern.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Keywords are lowercase substrings searched for in signal text.
	Keywords []string `json:"keywords"`

	// Categories are hints compared with signal categories in both directions.
	Categories []string `json:"categories"`

	// MinSignals is the matched-signal threshold, always at least 1.
	MinSignals int `json:"minSignals"`

	// Description is the full narrative prose.
	Description string `json:"description"`

	// BuildIdeas are ordered suggestions.
	BuildIdeas []BuildIdea `json:"buildIdeas"`
}

// PrimaryCategory returns the first category hint, or DefaultCategory.
func (p *NarrativePattern) PrimaryCategory() string {
	if len(p.Categories) == 0 {
		return DefaultCategory
	}
	return p.Categories[0]
}

// Summary returns the first SummaryLength characters of the description
// followed by an ellipsis. The cut ignores word boundaries.
func (p *NarrativePattern) Summary() string {
	runes := []rune(p.Description)
	if len(runes) > SummaryLength {
		runes = runes[:SummaryLength]
	}
	return string(runes) + summaryEllipsis
}

// Narrative is a detected pattern backed by at least MinSignals signals.
type Narrative struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Summary     string      `json:"summary"`
	Description string      `json:"description"`
	Signals     []Signal    `json:"signals"`
	Confidence  int         `json:"confidence"`
	Trend       Trend       `json:"trend"`
	BuildIdeas  []BuildIdea `json:"buildIdeas"`
	DetectedAt  time.Time   `json:"detectedAt"`
	Category    string      `json:"category"`
}

// HasSource reports whether any matched signal came from the given kind.
func (n *Narrative) HasSource(kind SourceKind) bool {
	for i := range n.Signals {
		if n.Signals[i].Source == kind {
			return true
		}
	}
	return false
}

// AnalysisResult is the output of one analysis pass.
type AnalysisResult struct {
	// RunID identifies the pass in logs and outer surfaces.
	RunID string `json:"runId,omitempty"`

	// Narratives are sorted by confidence, highest first.
	Narratives []Narrative `json:"narratives"`

	// TotalSignals counts every signal collected before matching.
	TotalSignals int `json:"totalSignals"`

	// DataSourcesUsed lists the feeds that contributed at least one signal.
	DataSourcesUsed []string `json:"dataSourcesUsed"`

	// AnalyzedAt is the single timestamp of the pass.
	AnalyzedAt time.Time `json:"analyzedAt"`

	// AgentVersion tags the analysis logic.
	AgentVersion string `json:"agentVersion"`
}

// FilterByConfidence returns the narratives at or above min, preserving order.
// The receiver is not modified.
func (r *AnalysisResult) FilterByConfidence(minConfidence int) []Narrative {
	out := make([]Narrative, 0, len(r.Narratives))
	for i := range r.Narratives {
		if r.Narratives[i].Confidence >= minConfidence {
			out = append(out, r.Narratives[i])
		}
	}
	return out
}

// FindNarrative returns the narrative with the given ID, matched case-insensitively.
func (r *AnalysisResult) FindNarrative(id string) (*Narrative, bool) {
	for i := range r.Narratives {
		if strings.EqualFold(r.Narratives[i].ID, id) {
			return &r.Narratives[i], true
		}
	}
	return nil, false
}
