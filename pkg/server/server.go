// Package server provides the MCP server exposing the geokit tools.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/geokit/pkg/tools"
	"github.com/NERVsystems/geokit/pkg/tools/prompts"
	"github.com/NERVsystems/geokit/pkg/version"
)

// ServerName is the name of the MCP server
const ServerName = "geokit"

// Server encapsulates the MCP server with the geokit tools.
type Server struct {
	srv    *server.MCPServer
	logger *slog.Logger
}

// NewServer creates a new MCP server with every tool of registry and the
// geokit prompts registered.
func NewServer(registry *tools.Registry, logger *slog.Logger) (*Server, error) {
	if registry == nil {
		return nil, errors.New("server: nil tool registry")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initializing geokit MCP server",
		"name", ServerName,
		"version", version.BuildVersion)

	// Create MCP server with options
	srv := server.NewMCPServer(
		ServerName,
		version.BuildVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	registry.RegisterTools(srv)
	prompts.RegisterPrompts(srv)

	return &Server{srv: srv, logger: logger}, nil
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.srv
}

// Run starts the MCP server using stdin/stdout for communication.
func (s *Server) Run(ctx context.Context) error {
	return s.RunWithIO(ctx, os.Stdin, os.Stdout)
}

// RunWithIO serves MCP over the given streams until ctx is cancelled or in
// reaches EOF. Cancellation is not reported as an error.
func (s *Server) RunWithIO(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.srv)
	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		s.logger.Info("server stopped")
		return nil
	}
	return err
}
