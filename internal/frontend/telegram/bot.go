// Package telegram implements the Telegram frontend: listings as numbered
// messages with inline buttons, and the detail view as a poster plus a text
// message that is deleted when the user closes it or opens another title.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vadimtrunov/reelview/internal/catalog"
	"github.com/vadimtrunov/reelview/internal/core"
)

// sender is the subset of *tgbotapi.BotAPI used to talk to chats.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Options holds access control and rate limit settings.
type Options struct {
	AllowedUserIDs []int64 // empty allows everyone
	RatePerSecond  float64
	Burst          int
}

// Bot is the Telegram frontend for reelview.
// It implements the core.Frontend interface.
type Bot struct {
	bot      *tgbotapi.BotAPI // nil in tests
	api      sender
	catalog  core.Catalog
	images   catalog.Images
	sessions *sessionManager
	logger   *slog.Logger
}

// compile-time checks.
var _ core.Frontend = (*Bot)(nil)

// New creates a new Telegram Bot.
func New(token string, cat core.Catalog, images catalog.Images, opts Options, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	b := newBot(api, cat, images, opts, logger)
	b.bot = api
	return b, nil
}

func newBot(api sender, cat core.Catalog, images catalog.Images, opts Options, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		api:      api,
		catalog:  cat,
		images:   images,
		sessions: newSessionManager(opts.AllowedUserIDs, opts.RatePerSecond, opts.Burst),
		logger:   logger,
	}
}

// Name returns the frontend name.
func (b *Bot) Name() string { return "telegram" }

// Start starts the long-polling loop. It blocks until ctx is canceled.
func (b *Bot) Start(ctx context.Context) error {
	if b.bot == nil {
		return fmt.Errorf("telegram bot is not connected")
	}
	b.logger.Info("telegram bot started",
		slog.String("username", b.bot.Self.UserName),
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.bot.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches an incoming Telegram update.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}
