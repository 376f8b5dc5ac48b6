// Package server exposes a Session as Model Context Protocol tools.
package server

import (
	"fmt"
	"sync"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/desktop-agent/internal/logging"
	"github.com/mj1618/desktop-agent/internal/session"
	"github.com/mj1618/desktop-agent/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server around one session. Every tool call holds mu,
// so the accessibility and input services see one request at a time.
type Server struct {
	mu   sync.Mutex
	sess *session.Session
	mcp  *mcpserver.MCPServer
}

// New creates an MCP server with all desktop-agent tools registered.
func New(sess *session.Session) *Server {
	s := &Server{sess: sess}
	s.mcp = mcpserver.NewMCPServer(
		"desktop-agent",
		version.Version,
		mcpserver.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve blocks serving the configured transport.
func (s *Server) Serve(cfg Config) error {
	logging.Info("serving MCP", "transport", cfg.Transport, "port", cfg.Port)
	switch cfg.Transport {
	case "", "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}
