package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/services"
	"github.com/custodia-labs/ronin/internal/logger"
)

var (
	watchInterval time.Duration
	watchCount    int
	watchJSON     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis on an interval",
	Long: `Runs the analysis immediately and then again every --interval, printing
each report followed by how narratives moved since the previous run.

With --json each run is printed as one line of JSON. A custom pattern
file is reloaded when it changes, so edits apply from the next run.
Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 15*time.Minute, "time between runs")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "stop after this many runs (0 = until interrupted)")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "print each result as a line of JSON")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}
	if watchInterval <= 0 {
		return fmt.Errorf("%w: --interval must be positive", domain.ErrInvalidInput)
	}
	if watchCount < 0 {
		return fmt.Errorf("%w: --count must not be negative", domain.ErrInvalidInput)
	}
	if watchInterval < time.Minute {
		logger.Warn("watch: intervals under a minute may hit upstream rate limits")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	watchPatterns(ctx)

	out := cmd.OutOrStdout()
	w := &watcher{out: out, json: watchJSON}
	if historyService != nil {
		if prev, err := historyService.GetRun(ctx, "latest"); err == nil {
			w.prev = prev
		}
	}

	scheduler := services.NewScheduler(services.SchedulerConfig{
		Interval:   watchInterval,
		RunTimeout: watchInterval,
		MaxRuns:    watchCount,
	}, analysisService, w.handle)

	err := scheduler.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}
	return w.err
}

// watcher prints each scheduled run and remembers it for the next diff.
type watcher struct {
	out  io.Writer
	json bool
	prev *domain.AnalysisResult
	runs int
	err  error
}

func (w *watcher) handle(result *domain.AnalysisResult, err error) {
	w.runs++
	if err != nil {
		fmt.Fprintf(w.out, "run %d failed: %v\n", w.runs, err)
		return
	}

	if w.json {
		data, mErr := json.Marshal(result)
		if mErr != nil {
			w.err = fmt.Errorf("failed to marshal result: %w", mErr)
			return
		}
		fmt.Fprintln(w.out, string(data))
		w.prev = result
		return
	}

	s := stylesFor(w.out)
	if w.runs > 1 {
		fmt.Fprintln(w.out)
	}
	renderAnalysis(w.out, s, result, result.Narratives)
	if w.prev != nil {
		fmt.Fprintln(w.out)
		fmt.Fprintln(w.out, s.Subtitle.Render("Since "+w.prev.AnalyzedAt.Local().Format("2006-01-02 15:04")))
		renderChanges(w.out, s, result.Compare(w.prev))
	}
	w.prev = result
}
