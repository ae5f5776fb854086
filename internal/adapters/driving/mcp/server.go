package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// Version is the MCP server version, kept in step with the analysis logic.
const Version = domain.AgentVersion

// ToolAnalyze is the one tool ronin exposes.
const ToolAnalyze = "analyze_narratives"

// instructions tells the client when the radar is worth calling.
const instructions = `ronin is a Solana narrative radar. Call ` + ToolAnalyze + ` for a fresh,
ranked list of ecosystem narratives built from DeFi TVL, GitHub activity and
token markets; a pass takes a few seconds and reads live upstreams. Read
ronin://patterns for the narratives ronin can detect and their keywords.`

// shutdownTimeout bounds the HTTP drain after the context ends.
const shutdownTimeout = 5 * time.Second

// Server exposes narrative analysis and the pattern catalogue to MCP clients.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer registers the analyze tool and the pattern resources. Without a
// catalogue the resources list nothing.
func NewServer(ports *Ports) (*Server, error) {
	if ports == nil {
		return nil, fmt.Errorf("validating ports: %w", ErrMissingAnalysisService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "ronin", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until ctx ends or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves streamable HTTP on addr until ctx ends. Every session
// shares the one server, so analyses from different clients run side by side.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr: addr,
		Handler: mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.server
		}, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck // exit path
	}()

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
