package telegram

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/vadimtrunov/reelview/internal/core"
	"github.com/vadimtrunov/reelview/internal/view"
)

const (
	unauthorizedMsg = "Sorry, you are not authorized to use this bot."
	rateLimitedMsg  = "Too many requests, please slow down."
	searchUsageMsg  = "Usage: /search <title>"
	welcomeMsg      = "Welcome to reelview! Send a title to search, or pick a category below."
	helpMsg         = "Commands: /popular, /top_rated, /random, /search <title>. Any other text is a search."
)

// handleMessage processes an incoming text message.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	b.logger.Debug("received message",
		slog.Int64("user_id", userID),
	)

	if !b.sessions.isAllowed(userID) {
		b.sendText(chatID, unauthorizedMsg)
		return
	}
	if !b.sessions.allow(chatID) {
		b.sendText(chatID, rateLimitedMsg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if !strings.HasPrefix(text, "/") {
		b.sendListing(ctx, chatID, core.KindSearch, text)
		return
	}

	cmd, arg, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@") // /popular@reelview_bot
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/start":
		b.sendText(chatID, welcomeMsg)
		b.sendListing(ctx, chatID, core.KindPopular, "")
	case "/popular":
		b.sendListing(ctx, chatID, core.KindPopular, "")
	case "/top_rated", "/toprated":
		b.sendListing(ctx, chatID, core.KindTopRated, "")
	case "/random":
		b.sendListing(ctx, chatID, core.KindRandom, "")
	case "/search":
		if arg == "" {
			b.sendText(chatID, searchUsageMsg)
			return
		}
		b.sendListing(ctx, chatID, core.KindSearch, arg)
	default:
		b.sendText(chatID, helpMsg)
	}
}

// handleCallback processes inline keyboard callback queries.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil || cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	b.logger.Debug("received callback",
		slog.Int64("user_id", userID),
		slog.String("data", cq.Data),
	)

	if !b.sessions.isAllowed(userID) {
		b.answer(cq.ID, unauthorizedMsg)
		return
	}
	if !b.sessions.allow(chatID) {
		b.answer(cq.ID, rateLimitedMsg)
		return
	}
	b.answer(cq.ID, "")

	cb, ok := parseCallback(cq.Data)
	if !ok {
		b.logger.Warn("unknown callback data", slog.String("data", cq.Data))
		return
	}

	switch cb.action {
	case cbCategory:
		b.sendListing(ctx, chatID, cb.kind, "")
	case cbDetail, cbRec:
		b.openDetail(ctx, chatID, cb.id)
	case cbClose:
		b.deleteMessages(chatID, b.sessions.closeModal(chatID))
	}
}

// sendListing fetches a listing and sends it as a numbered list with buttons.
func (b *Bot) sendListing(ctx context.Context, chatID int64, kind core.Kind, query string) {
	b.typing(chatID)

	items, err := b.catalog.List(ctx, kind, query)
	if err != nil {
		b.logger.Error("listing request failed",
			slog.Int64("chat_id", chatID),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		b.sendWithKeyboard(chatID, view.FailureMessage(err), "", categoryKeyboard())
		return
	}

	res := view.BuildResults(kind, query, items, b.images)
	b.sendWithKeyboard(chatID, formatResults(&res, plainText), formatResults(&res, mdText), resultsKeyboard(&res))
}

// openDetail replaces the chat's open detail view with the one for id.
// The detail and its recommendations are fetched concurrently; a failed
// recommendation fetch never fails the detail.
func (b *Bot) openDetail(ctx context.Context, chatID int64, id int) {
	gen, prev := b.sessions.openModal(chatID)
	b.deleteMessages(chatID, prev)
	b.typing(chatID)

	var (
		item    *core.DetailItem
		recs    []core.ListingItem
		recsErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		item, err = b.catalog.Detail(gctx, id)
		return err
	})
	g.Go(func() error {
		recs, recsErr = b.catalog.Recommendations(gctx, id)
		return nil
	})
	err := g.Wait()

	if !b.sessions.accepts(chatID, gen) {
		b.logger.Debug("dropping stale detail", slog.Int("id", id))
		return
	}

	if err != nil {
		b.logger.Error("detail request failed",
			slog.Int64("chat_id", chatID),
			slog.Int("id", id),
			slog.String("error", err.Error()),
		)
		ids := b.sendWithKeyboard(chatID, view.DetailFailureMessage(err), "", detailKeyboard(nil))
		b.attach(chatID, gen, ids)
		return
	}
	if recsErr != nil {
		b.logger.Error("recommendations request failed",
			slog.Int64("chat_id", chatID),
			slog.Int("id", id),
			slog.String("error", recsErr.Error()),
		)
	}

	d := view.BuildDetail(item, b.images)
	rv := view.RecsOutcome(recs, recsErr, b.images)

	var ids []int
	if photoID, ok := b.sendPoster(chatID, &d.Poster, d.TitleLine()); ok {
		ids = append(ids, photoID)
	}
	ids = append(ids, b.sendWithKeyboard(chatID, formatDetail(&d, rv, plainText), formatDetail(&d, rv, mdText), detailKeyboard(rv.Cards))...)
	b.attach(chatID, gen, ids)
}

// attach records the view's messages, or deletes them when the view was
// replaced while they were being sent.
func (b *Bot) attach(chatID int64, gen uint64, ids []int) {
	if !b.sessions.attachModal(chatID, gen, ids) {
		b.deleteMessages(chatID, ids)
	}
}

// sendPoster sends the poster photo. A failed send is retried once with the
// placeholder; if that fails too the view goes out as text only.
func (b *Bot) sendPoster(chatID int64, poster *view.Poster, caption string) (int, bool) {
	for {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(poster.URL))
		photo.Caption = caption
		sent, err := b.api.Send(photo)
		if err == nil {
			return sent.MessageID, true
		}
		b.logger.Debug("failed to send poster",
			slog.String("url", poster.URL),
			slog.String("error", err.Error()),
		)
		if !poster.Fail() {
			return 0, false
		}
	}
}

// sendWithKeyboard sends md as MarkdownV2, falling back to plain on a parse
// error. An empty md sends plain directly. It returns the sent message IDs.
func (b *Bot) sendWithKeyboard(chatID int64, plain, md string, kb tgbotapi.InlineKeyboardMarkup) []int {
	if md != "" {
		msg := tgbotapi.NewMessage(chatID, md)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.ReplyMarkup = kb
		sent, err := b.api.Send(msg)
		if err == nil {
			return []int{sent.MessageID}
		}
		b.logger.Warn("failed to send markdown, retrying plain",
			slog.String("error", err.Error()),
		)
	}

	msg := tgbotapi.NewMessage(chatID, plain)
	msg.ReplyMarkup = kb
	sent, err := b.api.Send(msg)
	if err != nil {
		b.logger.Error("failed to send message with keyboard",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return []int{sent.MessageID}
}

// sendText sends a plain text message (no parse mode).
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// typing shows the chat's loading indicator until the next message arrives.
func (b *Bot) typing(chatID int64) {
	b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)) //nolint:errcheck // best-effort typing indicator
}

func (b *Bot) answer(callbackID, text string) {
	b.api.Request(tgbotapi.NewCallback(callbackID, text)) //nolint:errcheck // best-effort ack
}

func (b *Bot) deleteMessages(chatID int64, ids []int) {
	for _, id := range ids {
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, id)); err != nil {
			b.logger.Debug("failed to delete message",
				slog.Int("message_id", id),
				slog.String("error", err.Error()),
			)
		}
	}
}
