package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

var (
	historyJSON  bool
	historyLimit int
)

// errHistoryDisabled is returned when no history store is wired.
var errHistoryDisabled = errors.New("history is disabled (enable with: ronin settings set history.enabled true)")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis runs",
	Long: `History is off by default. Once enabled with
"ronin settings set history.enabled true", every completed analysis is
recorded in ~/.ronin/history.db, keeping the newest history.max_runs runs.
Runs made with --no-config are never recorded.`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id|latest>",
	Short: "Print a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyNarrativeCmd = &cobra.Command{
	Use:   "narrative <id>",
	Short: "Show a narrative's confidence across recorded runs",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryNarrative,
}

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs (0 = all)")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyNarrativeCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errHistoryDisabled
	}
	if historyLimit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", domain.ErrInvalidInput)
	}

	runs, err := historyService.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, runs)
	}
	renderRuns(cmd.OutOrStdout(), stylesFor(cmd.OutOrStdout()), runs)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errHistoryDisabled
	}

	result, err := historyService.GetRun(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("run %q not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, result)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s\n", result.RunID)
	renderAnalysis(out, stylesFor(out), result, result.Narratives)
	return nil
}

func runHistoryNarrative(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errHistoryDisabled
	}
	if historyLimit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", domain.ErrInvalidInput)
	}

	points, err := historyService.NarrativeHistory(cmd.Context(), args[0], historyLimit)
	if err != nil {
		return fmt.Errorf("narrative history: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, points)
	}
	renderNarrativeHistory(cmd.OutOrStdout(), stylesFor(cmd.OutOrStdout()), args[0], points)
	return nil
}
