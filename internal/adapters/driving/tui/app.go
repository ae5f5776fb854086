package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/views/narratives"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	listView   *narratives.View
	detailView *detail.View
	statusBar  *status.Bar

	// previousView is restored when leaving help.
	previousView messages.ViewType
	currentView  messages.ViewType

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		listView:    narratives.NewView(s, km, ports.Analysis),
		detailView:  detail.NewView(s, km),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewNarratives,
	}, nil
}

// WithContext sets the context for analysis passes.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.listView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateAnalyzing)
	return tea.Batch(
		tea.SetWindowTitle("ronin - narrative radar"),
		a.listView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.AnalysisCompleted:
		a.listView, cmd = a.listView.Update(msg)
		a.syncStatus()
		return a, cmd

	case messages.NarrativeSelected:
		a.detailView.SetNarrative(msg.Narrative)
		a.currentView = messages.ViewDetail
		a.syncStatus()
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		a.syncStatus()
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		if msg.Err != nil {
			a.statusBar.SetMessage(msg.Err.Error())
		}
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Spinner ticks and other passive messages go to the list.
	a.listView, cmd = a.listView.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k := msg.String()

	if k == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) {
			a.currentView = a.previousView
			a.syncStatus()
		}
		return a, nil

	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.ViewNarratives:
		switch {
		case keymap.Matches(k, a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keymap.Help):
			a.previousView = a.currentView
			a.currentView = messages.ViewHelp
			return a, nil
		}
		a.listView, cmd = a.listView.Update(msg)
		a.syncStatus()
		return a, cmd
	}
	return a, nil
}

// syncStatus derives the status bar from the active view.
func (a *App) syncStatus() {
	a.statusBar.Clear()

	if a.currentView == messages.ViewDetail {
		a.statusBar.SetState(status.StateDetail)
		if n := a.detailView.Narrative(); n != nil {
			a.statusBar.SetMessage(n.Title)
		}
		return
	}

	switch {
	case a.listView.Loading():
		a.statusBar.SetState(status.StateAnalyzing)
	case a.listView.Err() != nil:
		a.err = a.listView.Err()
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(a.err.Error())
	case a.listView.Result() != nil:
		a.err = nil
		r := a.listView.Result()
		a.statusBar.SetState(status.StateResults)
		a.statusBar.SetCounts(len(r.Narratives), r.TotalSignals)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDetail:
		body = a.detailView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.listView.View()
	}

	lines := strings.Count(body, "\n") + 1
	if pad := a.height - lines - 1; pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + "\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.listView.SetDimensions(width, height-1)
	a.detailView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
