package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vadimtrunov/reelview/internal/core"
	"github.com/vadimtrunov/reelview/internal/view"
)

const (
	cardInnerWidth = 26
	cardOuterWidth = cardInnerWidth + 2 + 2 // padding and border
	cardHeight     = 7 // five content lines and border
	recInnerWidth  = 18
	recOuterWidth  = recInnerWidth + 2 + 2
	recHeight      = 4
	chromeHeight   = 9 // title, search, buttons, help
	maxModalWidth  = 100

	searchLine     = 2 // below the title and a blank line
	categoriesLine = 3
)

var categoryLabels = map[core.Kind]string{
	core.KindPopular:  "Popular",
	core.KindTopRated: "Top Rated",
	core.KindRandom:   "Random",
}

// rect is a screen area in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// View renders the browser, or the modal on top of it.
func (m Model) View() string {
	if m.modals.isOpen() {
		return m.renderModal()
	}

	var sb strings.Builder
	sb.WriteString(styleTitle.Render("reelview"))
	if m.Loading() {
		sb.WriteString("  " + m.spinner.View() + styleDim.Render(" Loading..."))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.renderSearch() + "\n")
	sb.WriteString(m.renderCategories() + "\n\n")
	sb.WriteString(m.renderBody())
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(styleError.Render(m.status) + "\n")
	}
	sb.WriteString(styleDim.Render(m.helpLine()))
	return sb.String()
}

func (m Model) renderSearch() string {
	if m.focus == focusSearch {
		return m.search.View()
	}
	return styleDim.Render(m.search.View())
}

func (m Model) renderCategories() string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.categoryButtons()...)
}

func (m Model) categoryButtons() []string {
	buttons := make([]string, 0, len(core.Categories))
	for i, kind := range core.Categories {
		style := styleButton
		if (m.focus == focusCategories && i == m.catIdx) || (m.focus != focusCategories && kind == m.kind) {
			style = styleButtonActive
		}
		buttons = append(buttons, style.Render(categoryLabels[kind]))
	}
	return buttons
}

func (m Model) renderBody() string {
	if m.errText != "" {
		return styleError.Render(m.errText)
	}
	if m.results == nil {
		return ""
	}
	heading := styleHeading.Render(m.results.Heading)
	if m.results.Empty {
		return heading + "\n" + styleDim.Render(m.results.Message)
	}
	return heading + "\n" + m.renderGrid()
}

// gridColumns returns how many cards fit side by side.
func (m Model) gridColumns() int {
	return max(1, m.width/cardOuterWidth)
}

// gridWindow returns the first and one-past-last card rows on screen. It
// scrolls to keep the selection visible.
func (m Model) gridWindow() (first, last int) {
	cols := m.gridColumns()
	rows := (len(m.results.Cards) + cols - 1) / cols

	visible := max(1, (m.height-chromeHeight)/cardHeight)
	if selRow := m.selected / cols; selRow >= visible {
		first = selRow - visible + 1
	}
	return first, min(rows, first+visible)
}

// gridTop returns the screen line of the first card row.
func (m Model) gridTop() int {
	heading := styleHeading.Render(m.results.Heading)
	return categoriesLine + lipgloss.Height(m.renderCategories()) + 1 + lipgloss.Height(heading)
}

// cardAt returns the index of the card under x, y.
func (m Model) cardAt(x, y int) (int, bool) {
	if m.errText != "" || m.results == nil || m.results.Empty {
		return 0, false
	}
	top := m.gridTop()
	first, last := m.gridWindow()
	if y < top || y >= top+(last-first)*cardHeight {
		return 0, false
	}
	cols := m.gridColumns()
	col := x / cardOuterWidth
	if x < 0 || col >= cols {
		return 0, false
	}
	i := (first+(y-top)/cardHeight)*cols + col
	if i >= len(m.results.Cards) {
		return 0, false
	}
	return i, true
}

// categoryAt returns the category whose button is under x, y.
func (m Model) categoryAt(x, y int) (core.Kind, bool) {
	buttons := m.categoryButtons()
	if y < categoriesLine || y >= categoriesLine+lipgloss.Height(buttons[0]) || x < 0 {
		return "", false
	}
	left := 0
	for i, b := range buttons {
		w := lipgloss.Width(b)
		if x < left+w {
			return core.Categories[i], true
		}
		left += w
	}
	return "", false
}

// renderGrid lays out the cards in rows.
func (m Model) renderGrid() string {
	cols := m.gridColumns()
	cards := m.results.Cards
	first, last := m.gridWindow()

	lines := make([]string, 0, last-first)
	for r := first; r < last; r++ {
		row := make([]string, 0, cols)
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(cards) {
				break
			}
			row = append(row, renderCard(&cards[i], i == m.selected && m.focus == focusGrid))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCard(c *view.Card, selected bool) string {
	meta := c.Year
	if c.Rating != "" {
		meta += "  " + styleStar.Render(c.Rating)
	}
	button := "[ " + view.LabelViewDetails + " ]"
	if selected {
		button = styleInfo.Render(button)
	} else {
		button = styleDim.Render(button)
	}
	poster := "▣ poster"
	if c.Poster.IsPlaceholder() {
		poster = "▢ placeholder"
	}
	body := strings.Join([]string{
		styleDim.Render(poster),
		styleLabel.Render(truncate(c.Title, cardInnerWidth)),
		meta,
		styleDim.Render(truncate(c.Genres, cardInnerWidth)),
		button,
	}, "\n")

	style := styleCard
	if selected {
		style = styleCardSelected
	}
	return style.Width(cardInnerWidth + 2).Render(body)
}

func (m Model) helpLine() string {
	switch m.focus {
	case focusSearch:
		return "enter search · tab categories · esc back"
	case focusCategories:
		return "←/→ choose · enter load · / search · tab back · q quit"
	default:
		return "arrows move · enter or click details · / search · tab categories · p/t/r popular/top/random · q quit"
	}
}

// modalBounds returns the on-screen box of the modal, centered the way
// lipgloss.Place centers it.
func (m Model) modalBounds() rect {
	w := min(maxModalWidth, max(24, m.width-4))
	h := max(10, m.height-2)
	return rect{
		x: center(m.width, w),
		y: center(m.height, h),
		w: w,
		h: h,
	}
}

func center(total, size int) int {
	gap := total - size
	if gap <= 0 {
		return 0
	}
	return int(math.Round(float64(gap) * 0.5))
}

// modalLayout is the modal content split into lines, with the position of
// the recommendation grid for hit-testing and scrolling.
type modalLayout struct {
	lines   []string
	recsTop int // first line of the recommendation grid, -1 when there is none
	perRow  int
	visible int
}

func (l modalLayout) maxScroll() int {
	return max(0, len(l.lines)-l.visible)
}

// contentOrigin returns the screen cell of the first content line.
func (b rect) contentOrigin() (x, y int) {
	return b.x + 1 + 2, b.y + 1 // border and padding
}

func (m Model) layoutModal() modalLayout {
	b := m.modalBounds()
	width := b.w - 2 - 4 // border and padding
	md := m.modals.active()
	l := modalLayout{recsTop: -1, perRow: max(1, width/recOuterWidth), visible: b.h - 2}

	switch md.state {
	case modalLoading:
		l.lines = wrap(m.spinner.View()+styleDim.Render(" Loading...")+"\n\n"+styleDim.Render("esc close"), width)
		return l
	case modalFailed:
		l.lines = wrap(styleError.Render(md.errText)+"\n\n"+styleDim.Render("esc close"), width)
		return l
	}

	l.lines = wrap(m.detailContent(), width)
	if len(md.recs.Cards) > 0 {
		l.recsTop = len(l.lines)
		l.lines = append(l.lines, strings.Split(renderRecs(md.recs.Cards, md.recSel, l.perRow), "\n")...)
	} else {
		l.lines = append(l.lines, wrap(styleDim.Render(md.recs.Message), width)...)
	}
	help := "←/→ select · enter open · ↑/↓ scroll · o poster · esc close"
	l.lines = append(l.lines, "")
	l.lines = append(l.lines, wrap(styleDim.Render(help), width)...)
	return l
}

// recAt returns the index of the recommendation card under x, y.
func (m Model) recAt(x, y int) (int, bool) {
	l := m.layoutModal()
	if l.recsTop < 0 {
		return 0, false
	}
	cards := m.modals.active().recs.Cards
	ox, oy := m.modalBounds().contentOrigin()
	line := y - oy + m.modals.active().scroll
	if x < ox || y < oy || y >= oy+l.visible || line < l.recsTop {
		return 0, false
	}
	row := (line - l.recsTop) / recHeight
	col := (x - ox) / recOuterWidth
	if col >= l.perRow {
		return 0, false
	}
	i := row*l.perRow + col
	if i >= len(cards) {
		return 0, false
	}
	return i, true
}

func (m Model) renderModal() string {
	b := m.modalBounds()
	l := m.layoutModal()
	scroll := clamp(m.modals.active().scroll, 0, l.maxScroll())
	lines := l.lines[scroll:min(len(l.lines), scroll+l.visible)]

	box := styleModal.Width(b.w - 2).Height(l.visible).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// detailContent renders the detail down to the recommendations heading.
func (m Model) detailContent() string {
	d := &m.modals.active().detail
	var sb strings.Builder
	sb.WriteString(styleTitle.Render(d.TitleLine()) + "\n")
	if line := d.OriginalTitleLine(); line != "" {
		sb.WriteString(styleDim.Render(line) + "\n")
	}
	if row := d.MetaRow(); row != "" {
		sb.WriteString(row + "\n")
	}
	poster := "Poster: " + d.Poster.URL
	if d.Poster.IsPlaceholder() {
		poster += " (placeholder)"
	}
	sb.WriteString(styleDim.Render(poster) + "\n\n")

	sb.WriteString(styleLabel.Render(view.LabelOverview) + "\n")
	sb.WriteString(d.Overview + "\n")

	if credits := d.Credits(); len(credits) > 0 {
		sb.WriteString("\n")
		for _, row := range credits {
			label, value, _ := strings.Cut(row, ": ")
			sb.WriteString(styleLabel.Render(label+":") + " " + value + "\n")
		}
	}

	sb.WriteString("\n" + styleLabel.Render(view.LabelRecs))
	return sb.String()
}

func renderRecs(cards []view.RecCard, selected, perRow int) string {
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(len(cards), start+perRow)
		row := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			c := cards[i]
			body := truncate(c.Title, recInnerWidth) + "\n" + styleDim.Render(c.Year)
			if c.Match != "" {
				body += "  " + styleInfo.Render(c.Match)
			}
			style := styleRec
			if i == selected {
				style = styleRecSelected
			}
			row = append(row, style.Width(recInnerWidth+2).Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// wrap word-wraps s to width and splits it into lines.
func wrap(s string, width int) []string {
	return strings.Split(lipgloss.NewStyle().Width(width).Render(s), "\n")
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
