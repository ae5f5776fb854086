// Package detail provides the single narrative view.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ronin/internal/core/domain"
)

// View shows one narrative with its signals and build ideas.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	viewport  viewport.Model
	narrative *domain.Narrative

	width  int
	height int
}

// NewView creates a detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

// SetNarrative replaces the displayed narrative and scrolls to the top.
func (v *View) SetNarrative(n domain.Narrative) {
	v.narrative = &n
	v.viewport.SetContent(v.renderContent())
	v.viewport.GotoTop()
}

// Narrative returns the displayed narrative.
func (v *View) Narrative() *domain.Narrative {
	return v.narrative
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && keymap.Matches(km.String(), v.keymap.Back) {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewNarratives}
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the detail view.
func (v *View) View() string {
	if v.narrative == nil {
		return v.styles.Muted.Render("No narrative selected.")
	}
	return v.viewport.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(1, height-2)
	if v.narrative != nil {
		v.viewport.SetContent(v.renderContent())
	}
}

func (v *View) renderContent() string {
	n := v.narrative
	wrap := lipgloss.NewStyle().Width(max(20, v.width-4))

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(n.Title))
	b.WriteString("  ")
	b.WriteString(v.styles.TrendBadge(n.Trend))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%s · detected %s",
		n.Category, n.DetectedAt.Format("2006-01-02 15:04 MST"))))
	b.WriteString("\n\n")
	b.WriteString("Confidence ")
	b.WriteString(v.styles.ConfidenceBar(n.Confidence, 20))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(n.Description))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Signals (%d)", len(n.Signals))))
	b.WriteString("\n")
	for i := range n.Signals {
		s := &n.Signals[i]
		b.WriteString(fmt.Sprintf("  [%s] %s %s\n",
			s.Source, s.Title, v.styles.Muted.Render(fmt.Sprintf("strength %.0f", s.Strength))))
		for _, dp := range s.DataPoints {
			line := fmt.Sprintf("      %s: %v", dp.Metric, dp.Value)
			if dp.Change != "" {
				line += " (" + dp.Change + ")"
			}
			b.WriteString(v.styles.Muted.Render(line))
			b.WriteString("\n")
		}
	}

	if len(n.BuildIdeas) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Build ideas"))
		b.WriteString("\n")
		for i, idea := range n.BuildIdeas {
			b.WriteString(fmt.Sprintf("  %d. %s  %s · %s\n",
				i+1, v.styles.Normal.Render(idea.Title),
				v.styles.Feasibility(idea.Feasibility), idea.EstimatedEffort))
			b.WriteString(wrap.Render("     " + idea.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}
