package services

import (
	"strings"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// PatternMatch pairs a pattern with the signals that matched it.
type PatternMatch struct {
	Pattern *domain.NarrativePattern
	Signals []domain.Signal
}

// SignalMatches reports whether a signal matches a pattern.
//
// A signal matches when any pattern keyword is a substring of its lowercased
// title, description and category, or when its category and any pattern
// category contain one another, ignoring case. An empty signal category is
// contained in every category hint.
func SignalMatches(p *domain.NarrativePattern, s *domain.Signal) bool {
	text := strings.ToLower(s.Title + " " + s.Description + " " + s.Category)
	for _, kw := range p.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}

	category := strings.ToLower(s.Category)
	for _, hint := range p.Categories {
		hint = strings.ToLower(hint)
		if strings.Contains(category, hint) || strings.Contains(hint, category) {
			return true
		}
	}
	return false
}

// MatchSignals returns the signals matching p, in input order.
func MatchSignals(p *domain.NarrativePattern, signals []domain.Signal) []domain.Signal {
	var matched []domain.Signal
	for i := range signals {
		if SignalMatches(p, &signals[i]) {
			matched = append(matched, signals[i])
		}
	}
	return matched
}

// Match evaluates every pattern against every signal, in catalogue order.
// Patterns whose match count is below MinSignals are dropped.
func Match(patterns []domain.NarrativePattern, signals []domain.Signal) []PatternMatch {
	var out []PatternMatch
	for i := range patterns {
		p := &patterns[i]
		matched := MatchSignals(p, signals)
		if len(matched) == 0 || len(matched) < p.MinSignals {
			continue
		}
		out = append(out, PatternMatch{Pattern: p, Signals: matched})
	}
	return out
}
