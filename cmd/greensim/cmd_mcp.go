package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecoffset/greensim/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server over stdio",
		Long: `Start a Model Context Protocol server exposing the simulation
pipeline as tools (greensim_simulate, greensim_compare, greensim_report).

The server communicates over stdin/stdout and is meant to be launched by
an MCP client, for example:

  {
    "mcpServers": {
      "greensim": {
        "command": "greensim",
        "args": ["mcp"]
      }
    }
  }`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log := newLogger(cfg)

			srv, err := mcp.NewServer(&mcp.Config{
				Name:    "greensim",
				Version: version,
			}, cfg, log)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			log.Info("starting MCP server", "transport", "stdio")
			return srv.Run(cmd.Context())
		},
	}

	return cmd
}
