package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/reelview/internal/frontend/tui"
)

// newBrowseCmd returns the "browse" subcommand for the interactive grid.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse titles in an interactive grid",
		Long: "Open the interactive browser. Use / to search, p/t/r for categories,\n" +
			"enter to open a title and q or Ctrl+C to exit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd.Context())
		},
	}
}

// runBrowse loads config and runs the TUI until the user quits.
func runBrowse(parent context.Context) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := fileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, images := newCatalog(cfg, logger)
	app := tui.NewApp(tui.Deps{
		Catalog: client,
		Prober:  client,
		Images:  images,
		Logger:  logger,
	})

	logger.Info("tui starting")
	return app.Start(ctx)
}
