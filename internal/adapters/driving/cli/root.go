// Package cli provides the cobra command tree for ronin.
// It is a driving adapter: commands call core services through driving ports.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ronin/internal/catalogue"
	"github.com/custodia-labs/ronin/internal/core/ports/driving"
	"github.com/custodia-labs/ronin/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services wired into the commands. Set by SetServices, or built from
// settings on first use.
var (
	analysisService  driving.AnalysisService
	catalogueService driving.CatalogueService
	settingsService  driving.SettingsService

	// historyService is nil when history is disabled.
	historyService driving.HistoryService

	// closeWired releases resources opened by wire.
	closeWired func() error

	// livePatterns is the reloadable catalogue, nil for the built-in one.
	livePatterns *catalogue.Live
)

var (
	verbose   bool
	noConfig  bool
	configDir string
	envFile   string
)

// skipWiring marks commands that never touch core services.
const skipWiring = "ronin/skip-wiring"

var rootCmd = &cobra.Command{
	Use:   "ronin",
	Short: "Narrative radar for the Solana ecosystem",
	Long: `ronin collects live signals from on-chain data, GitHub activity and
token markets, matches them against a catalogue of narrative patterns and
ranks the narratives it detects by confidence.

Run "ronin analyze" for a one-shot report, "ronin tui" to browse results
interactively, "ronin watch" to re-run on an interval, or "ronin serve" to
expose the analysis over HTTP. Completed runs are kept in a local history
that "ronin history" reads back.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&noConfig, "no-config", false, "ignore the config file and use defaults plus environment")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.ronin)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading settings")
}

// Services holds the driving ports used by the commands.
type Services struct {
	Analysis  driving.AnalysisService
	Catalogue driving.CatalogueService
	Settings  driving.SettingsService
	History   driving.HistoryService

	// patterns is set when the catalogue comes from a pattern file.
	patterns *catalogue.Live
}

// SetServices injects services, bypassing wiring from settings.
func SetServices(s Services) {
	analysisService = s.Analysis
	catalogueService = s.Catalogue
	settingsService = s.Settings
	historyService = s.History
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer releaseWired()
	return rootCmd.ExecuteContext(ctx)
}

func releaseWired() {
	if closeWired == nil {
		return
	}
	if err := closeWired(); err != nil {
		logger.Warn("close: %v", err)
	}
	closeWired = nil
	livePatterns = nil
}

// watchPatterns reloads a file-backed catalogue on change until ctx ends.
// It is a no-op for the built-in catalogue.
func watchPatterns(ctx context.Context) {
	if livePatterns == nil {
		return
	}
	events, err := livePatterns.Watch(ctx)
	if err != nil {
		logger.Warn("patterns: not watching %s: %v", livePatterns.Path(), err)
		return
	}
	logger.Debug("patterns: watching %s", livePatterns.Path())
	go func() {
		for ev := range events {
			if ev.Err != nil {
				logger.Warn("patterns: reload %s failed, keeping %d patterns: %v", ev.Path, ev.Patterns, ev.Err)
				continue
			}
			logger.Info("patterns: reloaded %d patterns from %s", ev.Patterns, ev.Path)
		}
	}()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipWiring] == "true" {
		return nil
	}

	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if analysisService != nil && catalogueService != nil && settingsService != nil {
		return nil
	}

	svc, closer, err := wire(cmd.Context(), wireOptions{noConfig: noConfig, configDir: configDir})
	if err != nil {
		return err
	}
	closeWired = closer
	livePatterns = svc.patterns
	if analysisService == nil {
		analysisService = svc.Analysis
	}
	if catalogueService == nil {
		catalogueService = svc.Catalogue
	}
	if settingsService == nil {
		settingsService = svc.Settings
	}
	if historyService == nil {
		historyService = svc.History
	}
	return nil
}
