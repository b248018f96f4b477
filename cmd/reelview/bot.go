package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/reelview/internal/config"
	"github.com/vadimtrunov/reelview/internal/frontend/telegram"
)

// newBotCmd returns the "bot" subcommand for running the Telegram bot.
func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Start the Telegram bot",
		Long:  "Serve listings, search and title details to Telegram chats.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd.Context())
		},
	}
}

// runBot initializes the catalog client and runs the Telegram bot until interrupted.
func runBot(parent context.Context) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if cfg.Telegram == nil {
		return errors.New(
			"telegram configuration is required: set telegram.bot_token in config or REELVIEW_TELEGRAM_BOT_TOKEN env var",
		)
	}

	logger := config.SetupLogger(cfg.App.LogLevel, os.Stderr)
	client, images := newCatalog(cfg, logger)

	bot, err := telegram.New(cfg.Telegram.BotToken, client, images, telegram.Options{
		AllowedUserIDs: cfg.Telegram.AllowedUserIDs,
		RatePerSecond:  cfg.Telegram.RatePerSecond,
		Burst:          cfg.Telegram.Burst,
	}, logger)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(parent)
	defer cancel()

	logger.Info("telegram bot starting")
	return bot.Start(ctx)
}
