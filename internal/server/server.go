// Package server provides the MCP server wrapper with lifecycle management.
package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/studioflow/internal/tools"
)

// Name is the implementation name announced to MCP clients.
const Name = "studioflow"

// Server wraps the MCP server with dependencies and lifecycle management.
type Server struct {
	mcp    *mcp.Server
	logger *slog.Logger
}

// New creates a new MCP server with the given version and logger.
func New(version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	impl := &mcp.Implementation{
		Name:    Name,
		Version: version,
	}

	opts := &mcp.ServerOptions{
		Instructions: "Tracks photography jobs from the shoot to delivery. " +
			"Jobs are referred to by id or unique id prefix; dates use YYYY-MM-DD.",
	}

	return &Server{
		mcp:    mcp.NewServer(impl, opts),
		logger: logger,
	}
}

// Run starts the server on stdio transport and blocks until disconnect or context cancellation.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "transport", "stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Setup adds the request logging middleware and registers the job tools.
func (s *Server) Setup(deps *tools.Dependencies) {
	s.mcp.AddReceivingMiddleware(LoggingMiddleware(s.logger))
	if deps != nil {
		if deps.Logger == nil {
			deps.Logger = s.logger
		}
		tools.RegisterAll(s.mcp, deps)
	}
}
