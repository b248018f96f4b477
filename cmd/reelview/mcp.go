package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/reelview/internal/config"
	mcpserver "github.com/vadimtrunov/reelview/internal/mcp"
)

// newMCPServeCmd returns the hidden "mcp-serve" subcommand.
// It starts an MCP server over stdin/stdout so that an assistant can
// list, search and inspect titles. Logs go to stderr.
func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "mcp-serve",
		Short:  "Start MCP server over stdio",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := config.SetupLogger(cfg.App.LogLevel, os.Stderr)
			client, images := newCatalog(cfg, logger)

			srv := mcpserver.NewServer(mcpserver.Deps{Catalog: client, Images: images}, version, logger)

			ctx, cancel := commandContext(cmd.Context())
			defer cancel()
			return srv.Start(ctx)
		},
	}
}
