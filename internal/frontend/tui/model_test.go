package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/reelview/internal/catalog"
	"github.com/vadimtrunov/reelview/internal/core"
	"github.com/vadimtrunov/reelview/internal/view"
)

// fakeCatalog implements core.Catalog and core.ImageProber for testing.
type fakeCatalog struct {
	lists     map[core.Kind][]core.ListingItem
	listErr   error
	details   map[int]*core.DetailItem
	detailErr error
	recs      map[int][]core.ListingItem
	recsErr   error
	probeErr  error
	queries   []string
	probed    []string
}

func (f *fakeCatalog) List(_ context.Context, kind core.Kind, query string) ([]core.ListingItem, error) {
	f.queries = append(f.queries, string(kind)+":"+query)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[kind], nil
}

func (f *fakeCatalog) Detail(_ context.Context, id int) (*core.DetailItem, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, &catalog.APIError{StatusCode: 404, Message: "Movie not found"}
}

func (f *fakeCatalog) Recommendations(_ context.Context, id int) ([]core.ListingItem, error) {
	if f.recsErr != nil {
		return nil, f.recsErr
	}
	return f.recs[id], nil
}

func (f *fakeCatalog) ProbeImage(_ context.Context, url string) error {
	f.probed = append(f.probed, url)
	return f.probeErr
}

// probedAt returns the probed URLs for one poster size.
func (f *fakeCatalog) probedAt(size catalog.Size) []string {
	var out []string
	for _, u := range f.probed {
		if strings.Contains(u, "/"+string(size)+"/") {
			out = append(out, u)
		}
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testImages() catalog.Images {
	return catalog.NewImages("", "", "http://localhost:5000/api")
}

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{
		lists: map[core.Kind][]core.ListingItem{
			core.KindPopular: {
				{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", VoteAverage: 8.2, PosterPath: "/m.jpg"},
				{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4},
			},
			core.KindSearch: {
				{ID: 603, Title: "The Matrix"},
				{ID: 604, Title: "The Matrix Reloaded"},
				{ID: 605, Title: "The Matrix Revolutions"},
			},
			core.KindRandom: {},
		},
		details: map[int]*core.DetailItem{
			603: {ListingItem: core.ListingItem{ID: 603, Title: "The Matrix", PosterPath: "/m.jpg", ReleaseDate: "1999-03-30"},
				ContentType: core.ContentMovie, Overview: "Neo wakes up."},
			604: {ListingItem: core.ListingItem{ID: 604, Title: "The Matrix Reloaded", ReleaseDate: "2003-05-15"},
				ContentType: core.ContentMovie},
			1399: {ListingItem: core.ListingItem{ID: 1399, Title: "Game of Thrones"},
				ContentType: core.ContentTV, NumberOfEpisodes: 73},
		},
		recs: map[int][]core.ListingItem{
			603: {{ID: 604, Title: "The Matrix Reloaded", Similarity: 0.9}, {ID: 605, Title: "The Matrix Revolutions"}},
		},
	}
}

func newTestModel(cat *fakeCatalog) Model {
	return New(context.Background(), Deps{
		Catalog: cat,
		Prober:  cat,
		Images:  testImages(),
		Logger:  testLogger(),
		OpenURL: func(string) error { return nil },
	})
}

// drain runs cmd and its batched children, skipping spinner ticks.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// update applies msg and returns the model with the messages its command produced.
func update(t *testing.T, m Model, msg tea.Msg) (Model, []tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), drain(cmd)
}

// settle applies msg and then every message it causes, until none remain.
func settle(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		var produced []tea.Msg
		m, produced = update(t, m, queue[0])
		queue = append(queue[1:], produced...)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, cat *fakeCatalog) Model {
	t.Helper()
	m := newTestModel(cat)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return settle(t, m, m.Init()())
}

func TestModel_InitialLoad(t *testing.T) {
	cat := sampleCatalog()
	m := newTestModel(cat)

	m, msgs := update(t, m, m.Init()())
	if !m.Loading() {
		t.Error("loading indicator should be visible while the request is in flight")
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 listing message, got %d", len(msgs))
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Error("view should show the loading indicator")
	}

	m, probes := update(t, m, msgs[0])
	if m.Loading() {
		t.Error("loading indicator should be hidden after the response")
	}
	if len(probes) != 1 {
		t.Fatalf("expected 1 card poster check, got %d", len(probes))
	}
	if cat.probed[0] != "https://image.tmdb.org/t/p/w300/m.jpg" {
		t.Errorf("unexpected card probe %v", cat.probed)
	}
	m, _ = update(t, m, probes[0])
	if m.results == nil || m.results.Heading != "Popular Movies & Shows" {
		t.Fatalf("unexpected results: %+v", m.results)
	}
	if len(m.results.Cards) != 2 {
		t.Errorf("expected 2 cards, got %d", len(m.results.Cards))
	}
	if cat.queries[0] != "popular:" {
		t.Errorf("unexpected request %q", cat.queries[0])
	}

	out := m.View()
	if m.results.Cards[0].Poster.IsPlaceholder() {
		t.Error("a reachable card poster should stay")
	}
	if !m.results.Cards[1].Poster.IsPlaceholder() {
		t.Error("a card without a poster path should show the placeholder")
	}
	for _, want := range []string{"Popular Movies & Shows", "The Matrix", "★ 8.2", view.LabelViewDetails, "▣ poster", "▢ placeholder"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ListFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", errors.New("dial tcp: connection refused"), view.MsgFetchFailed},
		{"application", &catalog.APIError{StatusCode: 400, Message: "Invalid endpoint"}, "Invalid endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := sampleCatalog()
			cat.listErr = tt.err
			m := loaded(t, cat)

			if m.Loading() {
				t.Error("loading indicator should be hidden after a failure")
			}
			if m.errText != tt.want {
				t.Errorf("errText = %q, want %q", m.errText, tt.want)
			}
			if !strings.Contains(m.View(), tt.want) {
				t.Error("view should show the error message")
			}
			if strings.Contains(m.View(), "connection refused") {
				t.Error("transport details must not reach the screen")
			}
		})
	}
}

func TestModel_EmptyResults(t *testing.T) {
	m := loaded(t, sampleCatalog())
	m = settle(t, m, key("r"))

	if m.results == nil || !m.results.Empty {
		t.Fatalf("expected empty results, got %+v", m.results)
	}
	out := m.View()
	if !strings.Contains(out, "Random Recommendations") || !strings.Contains(out, view.MsgNoResults) {
		t.Errorf("unexpected view:\n%s", out)
	}
}

func TestModel_Search(t *testing.T) {
	cat := sampleCatalog()
	m := loaded(t, cat)

	next, _ := m.Update(key("/"))
	m = next.(Model)
	if m.focus != focusSearch {
		t.Fatalf("expected search focus, got %v", m.focus)
	}
	next, _ = m.Update(key("  matrix "))
	m = next.(Model)
	m = settle(t, m, key("enter"))

	if got := cat.queries[len(cat.queries)-1]; got != "search:matrix" {
		t.Errorf("expected trimmed search query, got %q", got)
	}
	if m.results.Heading != `Search results for "matrix" (3)` {
		t.Errorf("Heading = %q", m.results.Heading)
	}
	if m.focus != focusGrid {
		t.Error("focus should return to the grid after searching")
	}
}

func TestModel_EmptySearchIssuesNoRequest(t *testing.T) {
	cat := sampleCatalog()
	m := loaded(t, cat)
	before := len(cat.queries)

	next, _ := m.Update(key("/"))
	m = next.(Model)
	next, _ = m.Update(key("   "))
	m = next.(Model)
	m, msgs := update(t, m, key("enter"))

	if len(msgs) != 0 || len(cat.queries) != before {
		t.Error("blank search should not issue a request")
	}
	if m.Loading() {
		t.Error("blank search should not show the loading indicator")
	}
}

func TestModel_CategoryButtons(t *testing.T) {
	cat := sampleCatalog()
	m := loaded(t, cat)

	m, _ = update(t, m, key("tab"))
	if m.focus != focusCategories {
		t.Fatalf("expected category focus, got %v", m.focus)
	}
	m, _ = update(t, m, key("right"))
	m = settle(t, m, key("enter"))

	if got := cat.queries[len(cat.queries)-1]; got != "top-rated:" {
		t.Errorf("expected top-rated request, got %q", got)
	}
	if m.kind != core.KindTopRated {
		t.Errorf("kind = %q", m.kind)
	}
}

func TestModel_LoadingCounter(t *testing.T) {
	m := loaded(t, sampleCatalog())

	m, first := update(t, m, key("p"))
	m, second := update(t, m, key("t"))
	if m.pending != 2 {
		t.Fatalf("expected 2 pending requests, got %d", m.pending)
	}

	m, _ = update(t, m, first[0])
	if !m.Loading() {
		t.Error("indicator should stay visible while a request is pending")
	}
	if m.results.Heading != "Popular Movies & Shows" {
		t.Error("superseded listing should not replace the results")
	}

	m, _ = update(t, m, second[0])
	if m.Loading() {
		t.Error("indicator should be hidden once all requests completed")
	}
	if m.kind != core.KindTopRated {
		t.Errorf("kind = %q", m.kind)
	}
}

func TestModel_OpenDetail(t *testing.T) {
	cat := sampleCatalog()
	m := loaded(t, cat)

	m, msgs := update(t, m, key("enter"))
	if !m.modals.isOpen() || m.modals.active().state != modalLoading {
		t.Fatal("expected a loading modal")
	}
	if !m.Loading() {
		t.Error("detail request should show the loading indicator")
	}

	m, follow := update(t, m, msgs[0])
	if m.Loading() {
		t.Error("indicator should be hidden after the detail response")
	}
	md := m.modals.active()
	if md.state != modalOpen || md.detail.Title != "The Matrix" {
		t.Fatalf("unexpected modal: %+v", md)
	}
	if md.recs.Message != view.MsgRecsLoading {
		t.Errorf("recs = %+v, want loading text", md.recs)
	}
	if !strings.Contains(m.View(), view.MsgRecsLoading) {
		t.Error("modal should show the recommendations loading text")
	}

	for _, msg := range follow {
		m, _ = update(t, m, msg)
	}
	md = m.modals.active()
	if len(md.recs.Cards) != 2 {
		t.Errorf("expected 2 recommendation cards, got %+v", md.recs)
	}
	if modal := cat.probedAt(catalog.SizeModal); len(modal) != 1 || modal[0] != "https://image.tmdb.org/t/p/w500/m.jpg" {
		t.Errorf("unexpected probes %v", cat.probed)
	}

	out := m.View()
	for _, want := range []string{"The Matrix (1999)", "Neo wakes up.", view.LabelRecs, "Match: 90%"} {
		if !strings.Contains(out, want) {
			t.Errorf("modal view missing %q", want)
		}
	}
}

func TestModel_RecommendationReplacesModal(t *testing.T) {
	m := loaded(t, sampleCatalog())
	m, msgs := update(t, m, key("enter"))
	m, follow := update(t, m, msgs[0])

	var staleRecsA tea.Msg
	for _, msg := range follow {
		if _, ok := msg.(recsMsg); ok {
			staleRecsA = msg
			continue
		}
		m, _ = update(t, m, msg)
	}
	// apply recs once so there is a card to activate, keep a copy as a late arrival
	m, _ = update(t, m, staleRecsA)
	genA := m.modals.active().gen

	m, msgs = update(t, m, key("enter"))
	md := m.modals.active()
	if md.id != 604 || md.gen == genA {
		t.Fatalf("expected a new modal for 604, got id=%d gen=%d", md.id, md.gen)
	}

	// late results for A must not paint
	m, _ = update(t, m, staleRecsA)
	md = m.modals.active()
	if md.id != 604 || md.state != modalLoading {
		t.Fatalf("stale results leaked into modal: id=%d state=%v", md.id, md.state)
	}

	m = settle(t, m, msgs[0])
	md = m.modals.active()
	if md.state != modalOpen || md.detail.Title != "The Matrix Reloaded" {
		t.Errorf("unexpected modal after B loaded: %+v", md.detail)
	}
	if md.recs.Message != view.MsgNoRecs {
		t.Errorf("recs message = %q", md.recs.Message)
	}
	if strings.Contains(m.View(), "Neo wakes up.") {
		t.Error("modal for A should be gone")
	}
	if m.Loading() {
		t.Errorf("pending = %d after all responses", m.pending)
	}
}

func TestModel_LateDetailDropped(t *testing.T) {
	m := loaded(t, sampleCatalog())

	m, msgsA := update(t, m, key("enter"))
	m, _ = update(t, m, key("esc"))
	m, _ = update(t, m, key("right"))
	m, msgsB := update(t, m, key("enter"))
	if m.pending != 2 {
		t.Fatalf("expected 2 pending requests, got %d", m.pending)
	}

	m, _ = update(t, m, msgsA[0])
	md := m.modals.active()
	if md.id != 550 || md.state != modalLoading {
		t.Fatalf("late detail for the closed modal painted: id=%d state=%v", md.id, md.state)
	}
	if !m.Loading() {
		t.Error("indicator should stay visible for the open modal's request")
	}

	m, _ = update(t, m, msgsB[0])
	if m.Loading() {
		t.Error("indicator should be hidden after both responses")
	}
}

func TestModel_DetailFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transport", errors.New("read: connection reset"), view.MsgDetailFailed},
		{"application", &catalog.APIError{StatusCode: 404, Message: "Movie not found"}, "Movie not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := sampleCatalog()
			m := loaded(t, cat)
			cat.detailErr = tt.err
			m = settle(t, m, key("enter"))

			md := m.modals.active()
			if md == nil || md.state != modalFailed {
				t.Fatalf("expected failed modal, got %+v", md)
			}
			if md.errText != tt.want {
				t.Errorf("errText = %q, want %q", md.errText, tt.want)
			}
			if m.Loading() {
				t.Error("indicator should be hidden after the failure")
			}
		})
	}
}

func TestModel_RecommendationFailure(t *testing.T) {
	cat := sampleCatalog()
	cat.recsErr = errors.New("timeout")
	m := loaded(t, cat)
	m = settle(t, m, key("enter"))

	md := m.modals.active()
	if md.state != modalOpen {
		t.Fatal("detail should still render")
	}
	if md.recs.Message != view.MsgRecsFailed {
		t.Errorf("recs message = %q", md.recs.Message)
	}
}

func TestModel_PosterFallback(t *testing.T) {
	cat := sampleCatalog()
	cat.probeErr = errors.New("HTTP 404")
	m := loaded(t, cat)
	m = settle(t, m, key("enter"))

	md := m.modals.active()
	if !md.detail.Poster.IsPlaceholder() {
		t.Fatalf("poster = %q, want placeholder", md.detail.Poster.URL)
	}
	if len(cat.probedAt(catalog.SizeModal)) != 1 {
		t.Errorf("placeholder should never be probed, probes: %v", cat.probed)
	}

	// a repeated failure report for the original URL changes nothing
	m, _ = update(t, m, posterMsg{gen: md.gen, url: "https://image.tmdb.org/t/p/w500/m.jpg", err: errors.New("again")})
	if m.modals.active().detail.Poster.URL != "http://localhost:5000/static/placeholder.jpg" {
		t.Errorf("poster changed after fallback: %q", m.modals.active().detail.Poster.URL)
	}
}

func TestModel_CloseModal(t *testing.T) {
	for _, k := range []string{"esc", "x"} {
		t.Run(k, func(t *testing.T) {
			m := loaded(t, sampleCatalog())
			m = settle(t, m, key("enter"))
			m, _ = update(t, m, key(k))
			if m.modals.isOpen() {
				t.Error("modal should be closed")
			}
		})
	}
}

func TestModel_BackdropClick(t *testing.T) {
	m := loaded(t, sampleCatalog())
	m = settle(t, m, key("enter"))
	b := m.modalBounds()

	inside := tea.MouseMsg{X: b.x + 1, Y: b.y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, inside)
	if !m.modals.isOpen() {
		t.Fatal("click inside the modal should not close it")
	}

	outside := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, outside)
	if m.modals.isOpen() {
		t.Error("click on the backdrop should close the modal")
	}
}

func TestModel_ReopenFetchesAgain(t *testing.T) {
	m := loaded(t, sampleCatalog())
	m = settle(t, m, key("enter"))
	first := m.modals.active().gen
	m, _ = update(t, m, key("esc"))

	m, msgs := update(t, m, key("enter"))
	if len(msgs) != 1 {
		t.Fatalf("reopening should issue a new detail request, got %d messages", len(msgs))
	}
	if m.modals.active().gen == first {
		t.Error("reopened modal should have a new generation")
	}
}

func TestModel_OpenPoster(t *testing.T) {
	var opened string
	cat := sampleCatalog()
	m := New(context.Background(), Deps{
		Catalog: cat,
		Images:  testImages(),
		Logger:  testLogger(),
		OpenURL: func(u string) error { opened = u; return nil },
	})
	m = settle(t, m, m.Init()())
	m = settle(t, m, key("enter"))
	settle(t, m, key("o"))

	if opened != "https://image.tmdb.org/t/p/w500/m.jpg" {
		t.Errorf("opened %q", opened)
	}
}

func TestModel_GridNavigation(t *testing.T) {
	m := loaded(t, sampleCatalog())
	m, _ = update(t, m, key("right"))
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}
	m, _ = update(t, m, key("right"))
	if m.selected != 1 {
		t.Error("selection should stop at the last card")
	}
	m, _ = update(t, m, key("down"))
	if m.selected != 1 {
		t.Error("moving down past the last row should be a no-op")
	}
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t, sampleCatalog())
	_, cmd := m.Update(key("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_CardPosterFallback(t *testing.T) {
	cat := sampleCatalog()
	cat.probeErr = errors.New("HTTP 404")
	m := loaded(t, cat)

	card := m.results.Cards[0]
	if !card.Poster.IsPlaceholder() {
		t.Fatalf("card poster = %q, want placeholder", card.Poster.URL)
	}
	if got := cat.probedAt(catalog.SizeCard); len(got) != 1 {
		t.Errorf("expected one card probe, got %v", got)
	}
	if strings.Contains(m.View(), "▣ poster") {
		t.Error("no card should show a loaded poster")
	}

	// a failure reported for a superseded listing is ignored
	cat.probeErr = nil
	m = settle(t, m, key("p"))
	m, _ = update(t, m, cardPosterMsg{gen: m.listGen - 1, index: 0, url: "https://image.tmdb.org/t/p/w300/m.jpg", err: errors.New("late")})
	if m.results.Cards[0].Poster.IsPlaceholder() {
		t.Error("stale probe result replaced the poster of the current listing")
	}
}

func TestModel_ClickCard(t *testing.T) {
	m := loaded(t, sampleCatalog())

	click := tea.MouseMsg{X: cardOuterWidth + 2, Y: m.gridTop() + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, msgs := update(t, m, click)
	if !m.modals.isOpen() || m.modals.active().id != 550 {
		t.Fatalf("click on the second card should open 550, modal: %+v", m.modals.active())
	}
	if len(msgs) != 1 {
		t.Errorf("expected a detail request, got %d messages", len(msgs))
	}
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}
}

func TestModel_ClickOutsideCards(t *testing.T) {
	m := loaded(t, sampleCatalog())

	// third column is empty with two cards
	click := tea.MouseMsg{X: 2*cardOuterWidth + 2, Y: m.gridTop() + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, msgs := update(t, m, click)
	if m.modals.isOpen() || len(msgs) != 0 {
		t.Error("click on an empty grid cell should do nothing")
	}
}

func TestModel_ClickCategory(t *testing.T) {
	cat := sampleCatalog()
	m := loaded(t, cat)

	buttons := m.categoryButtons()
	x := lipgloss.Width(buttons[0]) + lipgloss.Width(buttons[1]) + 1
	m = settle(t, m, tea.MouseMsg{X: x, Y: categoriesLine + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if got := cat.queries[len(cat.queries)-1]; got != "random:" {
		t.Errorf("last request = %q, want random", got)
	}
	if m.kind != core.KindRandom || m.catIdx != 2 {
		t.Errorf("kind = %s, catIdx = %d", m.kind, m.catIdx)
	}
}

func TestModel_ClickSearch(t *testing.T) {
	m := loaded(t, sampleCatalog())
	m, _ = update(t, m, tea.MouseMsg{X: 4, Y: searchLine, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.focus != focusSearch {
		t.Errorf("focus = %v, want search", m.focus)
	}
}

func TestModel_ClickRecommendation(t *testing.T) {
	m := loaded(t, sampleCatalog())
	m = settle(t, m, key("enter"))

	l := m.layoutModal()
	if l.recsTop < 0 {
		t.Fatal("modal should show recommendation cards")
	}
	ox, oy := m.modalBounds().contentOrigin()
	click := tea.MouseMsg{X: ox + recOuterWidth + 2, Y: oy + l.recsTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, msgs := update(t, m, click)

	if !m.modals.isOpen() || m.modals.active().id != 605 {
		t.Fatalf("click on the second recommendation should open 605, modal: %+v", m.modals.active())
	}
	if len(msgs) != 1 {
		t.Errorf("expected a detail request, got %d messages", len(msgs))
	}
}

func TestModel_ModalScroll(t *testing.T) {
	cat := sampleCatalog()
	cat.details[603].Overview = strings.Repeat("Neo wakes up in a pod and learns the truth. ", 12)
	cat.recs[603] = []core.ListingItem{
		{ID: 604, Title: "Reloaded"}, {ID: 605, Title: "Revolutions"}, {ID: 606, Title: "Animatrix"},
		{ID: 607, Title: "Resurrections"},
	}
	m := newTestModel(cat)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})
	m = settle(t, m, m.Init()())
	m = settle(t, m, key("enter"))

	l := m.layoutModal()
	if l.maxScroll() == 0 {
		t.Fatalf("content should overflow a short terminal, %d lines in %d", len(l.lines), l.visible)
	}
	if strings.Contains(m.View(), "Resurrections") {
		t.Error("recommendations should start below the fold")
	}

	m, _ = update(t, m, key("down"))
	if got := m.modals.active().scroll; got != 1 {
		t.Errorf("scroll = %d, want 1", got)
	}
	for range len(l.lines) + 5 {
		m, _ = update(t, m, key("down"))
	}
	if got := m.modals.active().scroll; got != l.maxScroll() {
		t.Errorf("scroll = %d, want clamped to %d", got, l.maxScroll())
	}
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if got := m.modals.active().scroll; got != l.maxScroll()-1 {
		t.Errorf("wheel up: scroll = %d, want %d", got, l.maxScroll()-1)
	}

	// selecting a recommendation brings its row into view
	for range 3 {
		m, _ = update(t, m, key("k"))
	}
	for range 3 {
		m, _ = update(t, m, key("right"))
	}
	md := m.modals.active()
	l = m.layoutModal()
	top := l.recsTop + (md.recSel/l.perRow)*recHeight
	if top < md.scroll || top+recHeight > md.scroll+l.visible {
		t.Errorf("selected recommendation row %d not within scroll %d..%d", top, md.scroll, md.scroll+l.visible)
	}
	if !strings.Contains(m.View(), "Resurrections") {
		t.Error("selected recommendation should be visible")
	}
}
