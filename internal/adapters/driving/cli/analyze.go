package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

var (
	analyzeJSON          bool
	analyzeTimeout       time.Duration
	analyzeMinConfidence int
	analyzeLimit         int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Detect narratives from live signals",
	Long: `Collects signals from every source, matches them against the pattern
catalogue and prints the detected narratives, highest confidence first.

--min-confidence and --limit only filter what is printed; the analysis
itself is unchanged.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the analysis result as JSON")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 30*time.Second, "deadline for the whole analysis (0 = none)")
	analyzeCmd.Flags().IntVar(&analyzeMinConfidence, "min-confidence", 0, "hide narratives below this confidence (0-100)")
	analyzeCmd.Flags().IntVarP(&analyzeLimit, "limit", "n", 0, "maximum number of narratives to print (0 = all)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}
	if analyzeMinConfidence < 0 || analyzeMinConfidence > 100 {
		return fmt.Errorf("%w: --min-confidence must be between 0 and 100", domain.ErrInvalidInput)
	}
	if analyzeLimit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", domain.ErrInvalidInput)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if analyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, analyzeTimeout)
		defer cancel()
	}

	result, err := analysisService.Analyze(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	narratives := selectNarratives(result, analyzeMinConfidence, analyzeLimit)

	if analyzeJSON {
		return outputAnalysisJSON(cmd, result, narratives)
	}
	renderAnalysis(cmd.OutOrStdout(), stylesFor(cmd.OutOrStdout()), result, narratives)
	return nil
}

// selectNarratives applies the presentation filters without touching result.
func selectNarratives(result *domain.AnalysisResult, minConfidence, limit int) []domain.Narrative {
	narratives := result.FilterByConfidence(minConfidence)
	if limit > 0 && len(narratives) > limit {
		narratives = narratives[:limit]
	}
	return narratives
}

func outputAnalysisJSON(cmd *cobra.Command, result *domain.AnalysisResult, narratives []domain.Narrative) error {
	view := *result
	view.Narratives = narratives

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
