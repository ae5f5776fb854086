// Package narratives provides the ranked narrative list view.
package narratives

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driving"
)

// barWidth is the width of the confidence bar in each row.
const barWidth = 10

// View lists detected narratives, highest confidence first.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	analysis driving.AnalysisService
	ctx      context.Context
	spinner  spinner.Model

	result   *domain.AnalysisResult
	selected int
	loading  bool
	err      error

	width  int
	height int
}

// NewView creates a narrative list view.
func NewView(s *styles.Styles, km *keymap.KeyMap, analysis driving.AnalysisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(s.Subtitle),
	)

	return &View{
		styles:   s,
		keymap:   km,
		analysis: analysis,
		ctx:      context.Background(),
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context analysis passes run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the first analysis pass.
func (v *View) Init() tea.Cmd {
	return v.Refresh()
}

// Refresh starts a new analysis pass unless one is already running.
func (v *View) Refresh() tea.Cmd {
	if v.loading {
		return nil
	}
	v.loading = true
	v.err = nil
	return tea.Batch(v.spinner.Tick, v.analyze())
}

func (v *View) analyze() tea.Cmd {
	analysis := v.analysis
	ctx := v.ctx
	return func() tea.Msg {
		if analysis == nil {
			return messages.AnalysisCompleted{Err: fmt.Errorf("analysis service not configured")}
		}
		result, err := analysis.Analyze(ctx)
		return messages.AnalysisCompleted{Result: result, Err: err}
	}
}

// Update handles messages for the list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.AnalysisCompleted:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.result = msg.Result
		v.selected = 0
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(v.Narratives())-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Refresh):
		return v, v.Refresh()
	case keymap.Matches(k, v.keymap.Select):
		if n, ok := v.Selected(); ok {
			return v, func() tea.Msg {
				return messages.NarrativeSelected{Narrative: n}
			}
		}
	}
	return v, nil
}

// View renders the list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("ronin · narrative radar"))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString("\n")
		b.WriteString(v.spinner.View())
		b.WriteString(v.styles.Muted.Render(" Collecting signals..."))
		b.WriteString("\n")
		return b.String()
	case v.err != nil:
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Analysis failed: " + v.err.Error()))
		b.WriteString("\n")
		return b.String()
	case v.result == nil:
		return b.String()
	}

	b.WriteString(v.styles.Muted.Render(fmt.Sprintf(
		"%d signals · sources: %s · %s",
		v.result.TotalSignals,
		sourcesLabel(v.result.DataSourcesUsed),
		v.result.AnalyzedAt.Format("2006-01-02 15:04 MST"),
	)))
	b.WriteString("\n\n")

	if len(v.result.Narratives) == 0 {
		b.WriteString(v.styles.Muted.Render("No narratives detected."))
		b.WriteString("\n")
		return b.String()
	}

	start, end := v.window()
	for i := start; i < end; i++ {
		b.WriteString(v.renderRow(i))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderRow(i int) string {
	n := v.result.Narratives[i]

	cursor := "  "
	title := v.styles.Normal.Render(n.Title)
	if i == v.selected {
		cursor = v.styles.Subtitle.Render("> ")
		title = v.styles.Selected.Render(n.Title)
	}

	return fmt.Sprintf("%s%s  %s  %s %s",
		cursor,
		v.styles.ConfidenceBar(n.Confidence, barWidth),
		v.styles.TrendBadge(n.Trend),
		title,
		v.styles.Muted.Render(fmt.Sprintf("(%d signals)", len(n.Signals))),
	)
}

// window returns the visible row range keeping the selection on screen.
func (v *View) window() (int, int) {
	total := len(v.result.Narratives)
	rows := v.height - 6
	if rows < 1 {
		rows = 1
	}
	if total <= rows {
		return 0, total
	}
	start := v.selected - rows + 1
	if start < 0 {
		start = 0
	}
	return start, start + rows
}

func sourcesLabel(sources []string) string {
	if len(sources) == 0 {
		return "none"
	}
	return strings.Join(sources, ", ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Narratives returns the narratives of the latest successful pass.
func (v *View) Narratives() []domain.Narrative {
	if v.result == nil {
		return nil
	}
	return v.result.Narratives
}

// Result returns the latest successful analysis result.
func (v *View) Result() *domain.AnalysisResult {
	return v.result
}

// Selected returns the highlighted narrative.
func (v *View) Selected() (domain.Narrative, bool) {
	narratives := v.Narratives()
	if v.selected < 0 || v.selected >= len(narratives) {
		return domain.Narrative{}, false
	}
	return narratives[v.selected], true
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Loading reports whether an analysis pass is running.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the error from the latest pass.
func (v *View) Err() error {
	return v.err
}
