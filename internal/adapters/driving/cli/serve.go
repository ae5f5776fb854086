package cli

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ronin/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/ronin/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the analysis over HTTP.

Endpoints:
  GET /api/analyze              run an analysis pass (?min_confidence=N)
  GET /api/patterns             list narrative patterns
  GET /api/patterns/:id         show one pattern
  GET /api/history              list recorded runs (?limit=N)
  GET /api/history/:runId       show a recorded run, or "latest"
  GET /api/narratives/:id/history  one narrative across runs
  GET /healthz                  liveness probe

The history endpoints exist only while history is enabled. A custom
pattern file (catalogue.path) is reloaded whenever it changes.

The listen address defaults to server.addr (or :$PORT).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if analysisService == nil || catalogueService == nil {
		return errors.New("analysis service not configured")
	}

	cfg := httpapi.Config{History: historyService}
	addr := serveAddr
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cfg.RequestTimeout = settings.Server.RequestTimeout
		if addr == "" {
			addr = settings.Server.Addr
		}
	}
	if addr == "" {
		addr = ":8080"
	}

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpapi.NewServer(analysisService, catalogueService, cfg)
	if err != nil {
		return err
	}

	watchPatterns(cmd.Context())

	fmt.Fprintf(cmd.OutOrStdout(), "ronin API listening on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}
