// Package mcp provides an MCP (Model Context Protocol) server adapter for ronin.
// It lets AI assistants run narrative analysis and read the pattern catalogue.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
