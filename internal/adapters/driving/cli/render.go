package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/ronin/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ronin/internal/core/domain"
)

// confidenceBarWidth is the width of the bar in the analyze report.
const confidenceBarWidth = 20

// stylesFor returns coloured styles for terminals and plain styles otherwise.
func stylesFor(w io.Writer) *styles.Styles {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return styles.DefaultStyles()
	}
	return styles.Plain()
}

func renderAnalysis(w io.Writer, s *styles.Styles, result *domain.AnalysisResult, narratives []domain.Narrative) {
	fmt.Fprintln(w, s.Title.Render("Narrative Radar"))
	fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf("%s · %d signals · sources: %s",
		result.AnalyzedAt.Format("2006-01-02 15:04 MST"),
		result.TotalSignals,
		joinOrNone(result.DataSourcesUsed),
	)))
	fmt.Fprintln(w)

	if len(narratives) == 0 {
		fmt.Fprintln(w, "No narratives detected.")
		return
	}

	for i := range narratives {
		renderNarrative(w, s, i+1, &narratives[i])
	}
}

func renderNarrative(w io.Writer, s *styles.Styles, rank int, n *domain.Narrative) {
	fmt.Fprintf(w, "%d. %s  %s\n", rank, s.Subtitle.Render(n.Title), s.TrendBadge(n.Trend))
	fmt.Fprintf(w, "   %s  %s\n", s.ConfidenceBar(n.Confidence, confidenceBarWidth), s.Muted.Render(n.Category))
	fmt.Fprintf(w, "   %s\n", n.Summary)

	fmt.Fprintf(w, "   Signals (%d):\n", len(n.Signals))
	for i := range n.Signals {
		sig := &n.Signals[i]
		fmt.Fprintf(w, "     - [%s] %s %s\n", sig.Source, sig.Title,
			s.Muted.Render(fmt.Sprintf("(strength %.0f)", sig.Strength)))
	}

	if len(n.BuildIdeas) > 0 {
		fmt.Fprintln(w, "   Build ideas:")
		for _, idea := range n.BuildIdeas {
			fmt.Fprintf(w, "     * %s [%s, %s]\n", idea.Title, s.Feasibility(idea.Feasibility), idea.EstimatedEffort)
		}
	}
	fmt.Fprintln(w)
}

func renderPatterns(w io.Writer, s *styles.Styles, patterns []domain.NarrativePattern) {
	if len(patterns) == 0 {
		fmt.Fprintln(w, "No patterns configured.")
		return
	}
	for i := range patterns {
		p := &patterns[i]
		fmt.Fprintf(w, "%-20s %s %s\n", p.ID, p.Title,
			s.Muted.Render(fmt.Sprintf("(min %d signals, %d keywords)", p.MinSignals, len(p.Keywords))))
	}
}

func renderPattern(w io.Writer, s *styles.Styles, p *domain.NarrativePattern) {
	fmt.Fprintln(w, s.Title.Render(p.Title))
	fmt.Fprintf(w, "ID:          %s\n", p.ID)
	fmt.Fprintf(w, "Categories:  %s\n", joinOrNone(p.Categories))
	fmt.Fprintf(w, "Min signals: %d\n", p.MinSignals)
	fmt.Fprintf(w, "Keywords:    %s\n", strings.Join(p.Keywords, ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Description)

	if len(p.BuildIdeas) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Subtitle.Render("Build ideas"))
		for _, idea := range p.BuildIdeas {
			fmt.Fprintf(w, "  * %s [%s, %s]\n", idea.Title, s.Feasibility(idea.Feasibility), idea.EstimatedEffort)
			fmt.Fprintf(w, "    %s\n", idea.Description)
			if idea.TargetAudience != "" {
				fmt.Fprintf(w, "    Audience: %s\n", idea.TargetAudience)
			}
		}
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func renderRuns(w io.Writer, s *styles.Styles, runs []domain.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet. Run \"ronin analyze\" first.")
		return
	}

	fmt.Fprintln(w, s.Title.Render("Recorded runs"))
	for _, r := range runs {
		top := r.TopNarrative
		if top == "" {
			top = "-"
		}
		fmt.Fprintf(w, "%s  %s  %3d narratives  %4d signals  top: %s\n",
			r.RunID,
			s.Muted.Render(r.AnalyzedAt.Local().Format("2006-01-02 15:04")),
			r.NarrativeCount, r.TotalSignals, top)
	}
}

func renderNarrativeHistory(w io.Writer, s *styles.Styles, id string, points []domain.NarrativePoint) {
	if len(points) == 0 {
		fmt.Fprintf(w, "Narrative %q does not appear in any recorded run.\n", id)
		return
	}

	fmt.Fprintln(w, s.Title.Render("History of "+id))
	for _, p := range points {
		fmt.Fprintf(w, "%s  %s  %s  (%d signals)\n",
			s.Muted.Render(p.AnalyzedAt.Local().Format("2006-01-02 15:04")),
			s.ConfidenceBar(p.Confidence, confidenceBarWidth),
			s.TrendBadge(p.Trend),
			p.SignalCount)
	}
}

// renderChanges prints how narratives moved since the previous run.
func renderChanges(w io.Writer, s *styles.Styles, changes []domain.NarrativeChange) {
	if len(changes) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No narratives in either run."))
		return
	}
	for _, c := range changes {
		var marker string
		switch {
		case c.New:
			marker = s.Success.Render("new")
		case c.Dropped:
			marker = s.Error.Render("dropped")
		case c.Delta > 0:
			marker = s.Success.Render(fmt.Sprintf("+%d", c.Delta))
		case c.Delta < 0:
			marker = s.Warning.Render(fmt.Sprintf("%d", c.Delta))
		default:
			marker = s.Muted.Render("=")
		}
		fmt.Fprintf(w, "  %-8s %3d  %s\n", marker, c.Confidence, c.Title)
	}
}
