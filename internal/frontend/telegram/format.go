package telegram

import (
	"fmt"
	"strings"

	"github.com/vadimtrunov/reelview/internal/view"
)

// mdV2Replacer escapes special characters for Telegram MarkdownV2.
var mdV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// EscapeMdV2 escapes a string for safe use in Telegram MarkdownV2.
func EscapeMdV2(s string) string {
	return mdV2Replacer.Replace(s)
}

// FormatBold returns MarkdownV2 bold text.
func FormatBold(s string) string {
	return "*" + EscapeMdV2(s) + "*"
}

// FormatItalic returns MarkdownV2 italic text.
func FormatItalic(s string) string {
	return "_" + EscapeMdV2(s) + "_"
}

// textFormat renders either MarkdownV2 or plain text, so a message rejected
// by the markdown parser can be resent as-is.
type textFormat struct {
	md bool
}

var (
	mdText    = textFormat{md: true}
	plainText = textFormat{}
)

func (f textFormat) text(s string) string {
	if f.md {
		return EscapeMdV2(s)
	}
	return s
}

func (f textFormat) bold(s string) string {
	if f.md {
		return FormatBold(s)
	}
	return s
}

func (f textFormat) italic(s string) string {
	if f.md {
		return FormatItalic(s)
	}
	return s
}

// formatResults renders a listing as a numbered list.
func formatResults(res *view.Results, f textFormat) string {
	var sb strings.Builder
	sb.WriteString(f.bold(res.Heading))
	sb.WriteString("\n\n")
	if res.Empty {
		sb.WriteString(f.text(res.Message))
		return sb.String()
	}
	for i, c := range res.Cards {
		line := fmt.Sprintf("%d. %s (%s)", i+1, c.Title, c.Year)
		sb.WriteString(f.text(line))
		if c.Rating != "" {
			sb.WriteString(" " + f.text(c.Rating))
		}
		if c.Genres != "" {
			sb.WriteString("\n    " + f.italic(c.Genres))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatDetail renders the detail view text and its recommendation state.
func formatDetail(d *view.Detail, recs view.Recs, f textFormat) string {
	var sb strings.Builder
	sb.WriteString(f.bold(d.TitleLine()))
	sb.WriteString("\n")
	if line := d.OriginalTitleLine(); line != "" {
		sb.WriteString(f.italic(line) + "\n")
	}
	if row := d.MetaRow(); row != "" {
		sb.WriteString(f.text(row) + "\n")
	}

	sb.WriteString("\n" + f.bold(view.LabelOverview) + "\n")
	sb.WriteString(f.text(d.Overview) + "\n")

	if credits := d.Credits(); len(credits) > 0 {
		sb.WriteString("\n")
		for _, row := range credits {
			label, value, _ := strings.Cut(row, ": ")
			sb.WriteString(f.bold(label+":") + " " + f.text(value) + "\n")
		}
	}

	sb.WriteString("\n" + f.bold(view.LabelRecs) + "\n")
	if recs.Message != "" {
		sb.WriteString(f.text(recs.Message))
		return sb.String()
	}
	for _, c := range recs.Cards {
		line := fmt.Sprintf("• %s (%s)", c.Title, c.Year)
		if c.Match != "" {
			line += " " + c.Match
		}
		sb.WriteString(f.text(line) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
