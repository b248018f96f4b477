package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vadimtrunov/reelview/internal/core"
	"github.com/vadimtrunov/reelview/internal/view"
)

// Callback data prefixes.
const (
	cbCategory = "cat:"
	cbDetail   = "det:"
	cbRec      = "rec:"
	cbClose    = "close"

	maxButtonLabel = 30 // max characters in inline keyboard button label
	recsPerRow     = 2
)

var categoryLabels = map[core.Kind]string{
	core.KindPopular:  "Popular",
	core.KindTopRated: "Top Rated",
	core.KindRandom:   "Random",
}

// callback is a parsed inline button press.
type callback struct {
	action string // cbCategory, cbDetail, cbRec or cbClose
	kind   core.Kind
	id     int
}

// parseCallback parses callback data. The second value is false for data
// this bot did not produce.
func parseCallback(data string) (callback, bool) {
	if data == cbClose {
		return callback{action: cbClose}, true
	}
	for _, prefix := range []string{cbDetail, cbRec} {
		if rest, ok := strings.CutPrefix(data, prefix); ok {
			id, err := strconv.Atoi(rest)
			if err != nil || id <= 0 {
				return callback{}, false
			}
			return callback{action: prefix, id: id}, true
		}
	}
	if rest, ok := strings.CutPrefix(data, cbCategory); ok {
		kind, known := core.ParseKind(rest)
		if !known || kind == core.KindSearch {
			return callback{}, false
		}
		return callback{action: cbCategory, kind: kind}, true
	}
	return callback{}, false
}

func buttonLabel(s string) string {
	r := []rune(s)
	if len(r) > maxButtonLabel {
		return string(r[:maxButtonLabel]) + "…"
	}
	return s
}

func categoryRow() []tgbotapi.InlineKeyboardButton {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(core.Categories))
	for _, kind := range core.Categories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(categoryLabels[kind], cbCategory+string(kind)))
	}
	return row
}

// resultsKeyboard builds one details button per card plus the category row.
func resultsKeyboard(res *view.Results) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(res.Cards)+1)
	for i, c := range res.Cards {
		label := buttonLabel(fmt.Sprintf("%d. %s", i+1, c.Title))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbDetail+strconv.Itoa(c.ID)),
		))
	}
	rows = append(rows, categoryRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// categoryKeyboard is shown with error messages so the user can retry.
func categoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(categoryRow())
}

// detailKeyboard builds the recommendation buttons and the close button.
func detailKeyboard(recs []view.RecCard) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for start := 0; start < len(recs); start += recsPerRow {
		end := min(len(recs), start+recsPerRow)
		row := make([]tgbotapi.InlineKeyboardButton, 0, end-start)
		for _, c := range recs[start:end] {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(buttonLabel(c.Title), cbRec+strconv.Itoa(c.ID)))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖ Close", cbClose),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
