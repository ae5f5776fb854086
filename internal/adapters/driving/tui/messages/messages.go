// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/ronin/internal/core/domain"
)

// AnalysisCompleted carries the result of one analysis pass.
type AnalysisCompleted struct {
	Result *domain.AnalysisResult
	Err    error
}

// NarrativeSelected is sent when a narrative is opened from the list.
type NarrativeSelected struct {
	Narrative domain.Narrative
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred reports an error to the active view.
type ErrorOccurred struct {
	Err error
}

// Quit requests application exit.
type Quit struct{}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewNarratives is the ranked narrative list.
	ViewNarratives ViewType = iota
	// ViewDetail shows one narrative in full.
	ViewDetail
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewNarratives:
		return "narratives"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}
