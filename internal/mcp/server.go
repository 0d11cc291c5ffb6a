package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"routinecraft/internal/catalog"
	"routinecraft/internal/llm"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the product catalog and
// routine generation to AI agents.
type Server struct {
	catalog  *catalog.Store
	provider llm.Provider
	model    string
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server over the given catalog. provider
// may be nil, in which case generate_routine reports that no provider
// is configured.
func NewServer(cat *catalog.Store, provider llm.Provider, model string) *Server {
	s := &Server{
		catalog:  cat,
		provider: provider,
		model:    model,
	}

	s.mcp = server.NewMCPServer(
		"routinecraft",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchProductsTool, s.handleSearchProducts)
	s.mcp.AddTool(getProductTool, s.handleGetProduct)
	s.mcp.AddTool(listCategoriesTool, s.handleListCategories)
	s.mcp.AddTool(generateRoutineTool, s.handleGenerateRoutine)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
