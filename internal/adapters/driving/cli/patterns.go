package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ronin/internal/catalogue"
	"github.com/custodia-labs/ronin/internal/core/domain"
)

var patternsJSON bool

var patternsCmd = &cobra.Command{
	Use:   "patterns [id]",
	Short: "List or show narrative patterns",
	Long: `Without arguments, lists every pattern in the active catalogue.
With an ID, shows the pattern's keywords, categories and build ideas.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatterns,
}

var patternsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the active catalogue as a TOML pattern file",
	Long: `Writes the active catalogue in the pattern file format, to the given
file or to stdout. Edit the file and point catalogue.path (or
RONIN_PATTERNS_FILE) at it to replace the built-in patterns.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatternsExport,
}

func init() {
	patternsCmd.Flags().BoolVar(&patternsJSON, "json", false, "output as JSON")
	patternsCmd.AddCommand(patternsExportCmd)
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	if catalogueService == nil {
		return errors.New("catalogue service not configured")
	}

	if len(args) == 0 {
		patterns := catalogueService.List()
		if patternsJSON {
			return printJSON(cmd, patterns)
		}
		renderPatterns(cmd.OutOrStdout(), stylesFor(cmd.OutOrStdout()), patterns)
		return nil
	}

	p, err := catalogueService.Get(args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("pattern %q not found", args[0])
		}
		return err
	}
	if patternsJSON {
		return printJSON(cmd, p)
	}
	renderPattern(cmd.OutOrStdout(), stylesFor(cmd.OutOrStdout()), p)
	return nil
}

func runPatternsExport(cmd *cobra.Command, args []string) error {
	if catalogueService == nil {
		return errors.New("catalogue service not configured")
	}
	patterns := catalogueService.List()

	if len(args) == 0 {
		return catalogue.Encode(cmd.OutOrStdout(), patterns)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create %s: %w", args[0], err)
	}
	if err := catalogue.Encode(f, patterns); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", args[0], err)
	}
	cmd.Printf("Wrote %d patterns to %s\n", len(patterns), args[0])
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
