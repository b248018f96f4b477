// Package tui implements the interactive terminal frontend: a search form,
// category buttons, a card grid and a detail modal with recommendations.
package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimtrunov/reelview/internal/catalog"
	"github.com/vadimtrunov/reelview/internal/core"
	"github.com/vadimtrunov/reelview/internal/view"
)

// Deps holds the services the model talks to.
type Deps struct {
	Catalog core.Catalog
	Prober  core.ImageProber // optional; nil skips poster checks
	Images  catalog.Images
	Logger  *slog.Logger
	OpenURL func(url string) error // defaults to the system browser
}

type focus int

const (
	focusGrid focus = iota
	focusSearch
	focusCategories
)

// dispatchMsg asks the model to issue a listing request.
type dispatchMsg struct {
	kind  core.Kind
	query string
}

// Model is the Bubble Tea model for the browser.
type Model struct {
	ctx     context.Context
	deps    Deps
	search  textinput.Model
	spinner spinner.Model

	focus    focus
	catIdx   int
	pending  int    // in-flight listing and detail requests
	listGen  uint64 // latest listing request
	kind     core.Kind
	results  *view.Results
	errText  string
	selected int
	status   string

	modals modalManager

	width  int
	height int
}

// New creates a Model. The first listing is requested by Init.
func New(ctx context.Context, deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.OpenURL == nil {
		deps.OpenURL = openURL
	}

	ti := textinput.New()
	ti.Placeholder = "Search movies & shows..."
	ti.CharLimit = 200
	ti.Prompt = "/ "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleInfo

	return Model{
		ctx:     ctx,
		deps:    deps,
		search:  ti,
		spinner: s,
		focus:   focusGrid,
		kind:    core.KindPopular,
		width:   80,
		height:  24,
	}
}

// Init requests the popular listing.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return dispatchMsg{kind: core.KindPopular} }
}

// Loading reports whether the loading indicator is visible.
func (m Model) Loading() bool {
	return m.pending > 0
}

// Update handles incoming messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(10, msg.Width-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case dispatchMsg:
		return m.dispatch(msg.kind, msg.query)

	case listMsg:
		return m, m.handleList(msg)

	case cardPosterMsg:
		m.handleCardPoster(msg)
		return m, nil

	case detailMsg:
		return m.handleDetail(msg)

	case recsMsg:
		m.handleRecs(msg)
		return m, nil

	case posterMsg:
		m.handlePoster(msg)
		return m, nil

	case openedMsg:
		m.deps.Logger.Warn("open in browser failed", slog.String("error", msg.err.Error()))
		m.status = "Could not open the browser."
		return m, nil

	case spinner.TickMsg:
		if m.pending > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// dispatch issues a listing request and shows the loading indicator.
func (m Model) dispatch(kind core.Kind, query string) (tea.Model, tea.Cmd) {
	m.pending++
	m.listGen++
	m.kind = kind
	m.status = ""
	m.deps.Logger.Debug("dispatch listing", slog.String("kind", string(kind)), slog.String("query", query))
	return m, tea.Batch(m.fetchList(m.listGen, kind, query), m.spinner.Tick)
}

// finish hides the loading indicator once every request has completed.
func (m *Model) finish() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m *Model) handleList(msg listMsg) tea.Cmd {
	m.finish()
	if msg.gen != m.listGen {
		m.deps.Logger.Debug("dropping superseded listing", slog.String("kind", string(msg.kind)))
		return nil
	}
	if msg.err != nil {
		m.deps.Logger.Error("listing request failed",
			slog.String("kind", string(msg.kind)),
			slog.String("error", msg.err.Error()),
		)
		m.results = nil
		m.errText = view.FailureMessage(msg.err)
		return nil
	}
	res := view.BuildResults(msg.kind, msg.query, msg.items, m.deps.Images)
	m.results = &res
	m.errText = ""
	m.selected = 0
	return m.probeCards()
}

// handleCardPoster switches a card to the placeholder when its poster failed to load.
func (m *Model) handleCardPoster(msg cardPosterMsg) {
	if msg.err == nil || msg.gen != m.listGen || m.results == nil {
		return
	}
	if msg.index < 0 || msg.index >= len(m.results.Cards) {
		return
	}
	card := &m.results.Cards[msg.index]
	if card.Poster.URL == msg.url && card.Poster.Fail() {
		m.deps.Logger.Debug("card poster unavailable, using placeholder",
			slog.Int("id", card.ID),
			slog.String("url", msg.url),
		)
	}
}

// openModal closes any open modal and starts loading id.
func (m Model) openModal(id int) (tea.Model, tea.Cmd) {
	gen := m.modals.open(id)
	m.pending++
	m.status = ""
	return m, tea.Batch(m.fetchDetail(gen, id), m.spinner.Tick)
}

func (m Model) handleDetail(msg detailMsg) (tea.Model, tea.Cmd) {
	m.finish()
	if !m.modals.accepts(msg.gen) {
		m.deps.Logger.Debug("dropping stale detail", slog.Uint64("gen", msg.gen))
		return m, nil
	}
	md := m.modals.active()
	if msg.err != nil {
		m.deps.Logger.Error("detail request failed",
			slog.Int("id", md.id),
			slog.String("error", msg.err.Error()),
		)
		md.state = modalFailed
		md.errText = view.DetailFailureMessage(msg.err)
		return m, nil
	}

	md.detail = view.BuildDetail(msg.item, m.deps.Images)
	md.state = modalOpen

	cmds := []tea.Cmd{m.fetchRecs(msg.gen, md.id)}
	if !md.detail.Poster.IsPlaceholder() {
		cmds = append(cmds, m.probePoster(msg.gen, md.detail.Poster.URL))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleRecs(msg recsMsg) {
	if !m.modals.accepts(msg.gen) {
		m.deps.Logger.Debug("dropping stale recommendations", slog.Uint64("gen", msg.gen))
		return
	}
	md := m.modals.active()
	if md.state != modalOpen {
		return
	}
	if msg.err != nil {
		m.deps.Logger.Error("recommendations request failed",
			slog.Int("id", md.id),
			slog.String("error", msg.err.Error()),
		)
	}
	md.recs = view.RecsOutcome(msg.items, msg.err, m.deps.Images)
	md.recSel = 0
}

func (m *Model) handlePoster(msg posterMsg) {
	if msg.err == nil || !m.modals.accepts(msg.gen) {
		return
	}
	md := m.modals.active()
	if md.detail.Poster.URL != msg.url {
		return
	}
	if md.detail.Poster.Fail() {
		m.deps.Logger.Warn("poster unavailable, using placeholder",
			slog.String("url", msg.url),
			slog.String("error", msg.err.Error()),
		)
	}
}

// handleKey dispatches key events to the handler for the current focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.modals.isOpen() {
		return m.handleModalKey(msg)
	}
	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusCategories:
		return m.handleCategoryKey(msg)
	default:
		return m.handleGridKey(msg)
	}
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	md := m.modals.active()
	switch msg.String() {
	case "esc", "x", "q":
		m.modals.close()
	case "left", "h", "shift+tab":
		if md.recSel > 0 {
			md.recSel--
			m.revealRec()
		}
	case "right", "l", "tab":
		if md.recSel < len(md.recs.Cards)-1 {
			md.recSel++
			m.revealRec()
		}
	case "up", "k":
		m.scrollModal(-1)
	case "down", "j":
		m.scrollModal(1)
	case "pgup":
		m.scrollModal(-m.modalBounds().h / 2)
	case "pgdown", " ":
		m.scrollModal(m.modalBounds().h / 2)
	case "enter":
		if md.state == modalOpen && len(md.recs.Cards) > 0 {
			id := md.recs.Cards[md.recSel].ID
			m.modals.close()
			return m.openModal(id)
		}
	case "o":
		if md.state == modalOpen {
			return m, m.openURLCmd(md.detail.Poster.URL)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(m.search.Value())
		if query == "" {
			return m, nil
		}
		m.search.Blur()
		m.focus = focusGrid
		return m.dispatch(core.KindSearch, query)
	case "esc":
		m.search.Blur()
		m.focus = focusGrid
		return m, nil
	case "tab":
		m.search.Blur()
		m.focus = focusCategories
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.catIdx > 0 {
			m.catIdx--
		}
	case "right", "l":
		if m.catIdx < len(core.Categories)-1 {
			m.catIdx++
		}
	case "enter", " ":
		m.focus = focusGrid
		return m.dispatch(core.Categories[m.catIdx], "")
	case "tab", "esc":
		m.focus = focusGrid
	case "/":
		return m.focusSearch()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.gridColumns()
	count := m.cardCount()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.focusSearch()
	case "tab":
		m.focus = focusCategories
	case "p":
		return m.dispatch(core.KindPopular, "")
	case "t":
		return m.dispatch(core.KindTopRated, "")
	case "r":
		return m.dispatch(core.KindRandom, "")
	case "left", "h":
		if m.selected > 0 {
			m.selected--
		}
	case "right", "l":
		if m.selected < count-1 {
			m.selected++
		}
	case "up", "k":
		if m.selected-cols >= 0 {
			m.selected -= cols
		}
	case "down", "j":
		if m.selected+cols < count {
			m.selected += cols
		}
	case "enter", "d":
		if count > 0 {
			return m.openModal(m.results.Cards[m.selected].ID)
		}
	}
	return m, nil
}

func (m Model) focusSearch() (tea.Model, tea.Cmd) {
	m.focus = focusSearch
	return m, m.search.Focus()
}

// handleMouse maps clicks onto the element under the pointer. With the modal
// open a click on the backdrop closes it and the wheel scrolls it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	if m.modals.isOpen() {
		return m.handleModalMouse(msg)
	}
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if msg.Y == searchLine {
		return m.focusSearch()
	}
	if kind, ok := m.categoryAt(msg.X, msg.Y); ok {
		m.search.Blur()
		m.focus = focusGrid
		m.catIdx = categoryIndex(kind)
		return m.dispatch(kind, "")
	}
	if i, ok := m.cardAt(msg.X, msg.Y); ok {
		m.search.Blur()
		m.focus = focusGrid
		m.selected = i
		return m.openModal(m.results.Cards[i].ID)
	}
	return m, nil
}

func (m Model) handleModalMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollModal(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollModal(1)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	if !m.modalBounds().contains(msg.X, msg.Y) {
		m.modals.close()
		return m, nil
	}
	if i, ok := m.recAt(msg.X, msg.Y); ok {
		id := m.modals.active().recs.Cards[i].ID
		m.modals.close()
		return m.openModal(id)
	}
	return m, nil
}

// scrollModal moves the modal content by delta lines, within bounds.
func (m *Model) scrollModal(delta int) {
	md := m.modals.active()
	l := m.layoutModal()
	md.scroll = clamp(md.scroll+delta, 0, l.maxScroll())
}

// revealRec scrolls the modal so the selected recommendation is visible.
func (m *Model) revealRec() {
	md := m.modals.active()
	l := m.layoutModal()
	if l.recsTop < 0 {
		return
	}
	top := l.recsTop + (md.recSel/l.perRow)*recHeight
	if top < md.scroll {
		md.scroll = top
	}
	if bottom := top + recHeight; bottom > md.scroll+l.visible {
		md.scroll = bottom - l.visible
	}
	md.scroll = clamp(md.scroll, 0, l.maxScroll())
}

func categoryIndex(kind core.Kind) int {
	for i, k := range core.Categories {
		if k == kind {
			return i
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func (m Model) cardCount() int {
	if m.results == nil {
		return 0
	}
	return len(m.results.Cards)
}
