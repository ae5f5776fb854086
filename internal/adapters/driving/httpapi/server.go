package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/ronin/internal/core/ports/driving"
	"github.com/custodia-labs/ronin/internal/logger"
)

// DefaultRequestTimeout bounds each request when Config leaves it unset.
const DefaultRequestTimeout = 30 * time.Second

// shutdownGrace is how long in-flight requests get after the context ends.
const shutdownGrace = 5 * time.Second

// Config holds server configuration.
type Config struct {
	// RequestTimeout bounds each request.
	RequestTimeout time.Duration

	// History enables the /api/history routes when set.
	History driving.HistoryService
}

// Server serves the HTTP API.
type Server struct {
	analysis  driving.AnalysisService
	catalogue driving.CatalogueService
	history   driving.HistoryService
	timeout   time.Duration
	engine    *gin.Engine
}

// NewServer creates the HTTP API server.
func NewServer(analysis driving.AnalysisService, catalogue driving.CatalogueService, cfg Config) (*Server, error) {
	if analysis == nil {
		return nil, errors.New("analysis service is required")
	}
	if catalogue == nil {
		return nil, errors.New("catalogue service is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	s := &Server{
		analysis:  analysis,
		catalogue: catalogue,
		history:   cfg.History,
		timeout:   cfg.RequestTimeout,
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), deadline(s.timeout))

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.GET("/analyze", s.analyze)
		api.GET("/patterns", s.listPatterns)
		api.GET("/patterns/:id", s.getPattern)

		if s.history != nil {
			api.GET("/history", s.listRuns)
			api.GET("/history/:runId", s.getRun)
			api.GET("/narratives/:id/history", s.narrativeHistory)
		}
	}

	return r
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	}
}

// deadline attaches the per-request timeout to the request context.
func deadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http: %s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
