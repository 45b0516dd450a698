// Package mcp provides an MCP (Model Context Protocol) server for greensim,
// exposing the simulation pipeline as tools for agent front ends.
package mcp

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ecoffset/greensim/internal/config"
)

// Server wraps the MCP SDK server around the simulation pipeline.
type Server struct {
	server *sdk.Server
	cfg    *config.Config
	log    *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "greensim")
	Version string // Server version
}

// NewServer creates a new MCP server exposing the greensim tools. cfg is
// the baseline simulation configuration; tool arguments override it per
// call without mutating it.
func NewServer(sc *Config, cfg *config.Config, log *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    sc.Name,
		Version: sc.Version,
	}, &sdk.ServerOptions{})

	s := &Server{
		server: mcpServer,
		cfg:    cfg,
		log:    log,
	}
	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// registerTools registers all greensim MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "greensim_simulate",
		Description: "Run one Monte Carlo scenario with optional parameter overrides and return its summary statistics",
	}, s.handleSimulate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "greensim_compare",
		Description: "Run the dual-scenario simulation (scenario 2 derived by random perturbation) and return both summaries plus the median comparison",
	}, s.handleCompare)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "greensim_report",
		Description: "Run the full pipeline and write the PDF report and histogram plots to the output directory",
	}, s.handleReport)
}
