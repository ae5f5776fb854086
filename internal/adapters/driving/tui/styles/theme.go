// Package styles provides colour themes and styling for the TUI and the
// styled CLI output.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// Theme defines the colour palette.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success marks accelerating narratives and high feasibility.
	Success lipgloss.Color

	// Warning marks mature narratives.
	Warning lipgloss.Color

	// Error marks declining narratives and failures.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#9945FF"), // Solana purple
		Secondary:  lipgloss.Color("#14F195"), // Solana green
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme
	plain bool

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
	BarFilled  lipgloss.Style
	BarEmpty   lipgloss.Style
	Emerging   lipgloss.Style
	Accelerate lipgloss.Style
	Mature     lipgloss.Style
	Declining  lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		BarFilled: lipgloss.NewStyle().Foreground(theme.Secondary),
		BarEmpty:  lipgloss.NewStyle().Foreground(theme.Border),

		Emerging:   badge.Foreground(theme.Foreground).Background(theme.Border),
		Accelerate: badge.Foreground(lipgloss.Color("#11111B")).Background(theme.Success),
		Mature:     badge.Foreground(lipgloss.Color("#11111B")).Background(theme.Warning),
		Declining:  badge.Foreground(lipgloss.Color("#11111B")).Background(theme.Error),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Plain returns styles that render text unchanged, for pipes and files.
func Plain() *Styles {
	none := lipgloss.NewStyle()
	return &Styles{
		theme:      DefaultTheme(),
		plain:      true,
		Title:      none,
		Subtitle:   none,
		Normal:     none,
		Muted:      none,
		Selected:   none,
		Error:      none,
		Success:    none,
		Warning:    none,
		StatusBar:  none,
		Help:       none,
		Border:     none,
		BarFilled:  none,
		BarEmpty:   none,
		Emerging:   none,
		Accelerate: none,
		Mature:     none,
		Declining:  none,
	}
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// IsPlain reports whether the styles add no formatting.
func (s *Styles) IsPlain() bool {
	return s.plain
}

// TrendBadge renders a trend label.
func (s *Styles) TrendBadge(t domain.Trend) string {
	if s.plain {
		return "[" + string(t) + "]"
	}
	switch t {
	case domain.TrendAccelerating:
		return s.Accelerate.Render(string(t))
	case domain.TrendMature:
		return s.Mature.Render(string(t))
	case domain.TrendDeclining:
		return s.Declining.Render(string(t))
	default:
		return s.Emerging.Render(string(t))
	}
}

// ConfidenceBar renders confidence as a fixed-width bar followed by the value.
func (s *Styles) ConfidenceBar(confidence, width int) string {
	if width < 1 {
		width = 1
	}
	confidence = max(0, min(100, confidence))
	filled := (confidence*width + 50) / 100
	return s.BarFilled.Render(strings.Repeat("█", filled)) +
		s.BarEmpty.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3d", confidence)
}

// Feasibility renders a build idea feasibility level.
func (s *Styles) Feasibility(f domain.Feasibility) string {
	switch f {
	case domain.FeasibilityHigh:
		return s.Success.Render(string(f))
	case domain.FeasibilityMedium:
		return s.Warning.Render(string(f))
	default:
		return s.Error.Render(string(f))
	}
}
