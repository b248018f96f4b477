package tui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimtrunov/reelview/internal/core"
)

// listMsg carries a listing response back to the event loop.
type listMsg struct {
	gen   uint64
	kind  core.Kind
	query string
	items []core.ListingItem
	err   error
}

// detailMsg carries a detail response for modal generation gen.
type detailMsg struct {
	gen  uint64
	item *core.DetailItem
	err  error
}

// recsMsg carries the recommendations for modal generation gen.
type recsMsg struct {
	gen   uint64
	items []core.ListingItem
	err   error
}

// posterMsg reports the outcome of a poster probe.
type posterMsg struct {
	gen uint64
	url string
	err error
}

// cardPosterMsg reports the outcome of a card poster probe for listing gen.
type cardPosterMsg struct {
	gen   uint64
	index int
	url   string
	err   error
}

// openedMsg reports a failed attempt to open a URL in the browser.
type openedMsg struct {
	err error
}

func (m Model) fetchList(gen uint64, kind core.Kind, query string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.Catalog.List(m.ctx, kind, query)
		return listMsg{gen: gen, kind: kind, query: query, items: items, err: err}
	}
}

func (m Model) fetchDetail(gen uint64, id int) tea.Cmd {
	return func() tea.Msg {
		item, err := m.deps.Catalog.Detail(m.ctx, id)
		return detailMsg{gen: gen, item: item, err: err}
	}
}

func (m Model) fetchRecs(gen uint64, id int) tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.Catalog.Recommendations(m.ctx, id)
		return recsMsg{gen: gen, items: items, err: err}
	}
}

func (m Model) probePoster(gen uint64, url string) tea.Cmd {
	if m.deps.Prober == nil {
		return nil
	}
	return func() tea.Msg {
		return posterMsg{gen: gen, url: url, err: m.deps.Prober.ProbeImage(m.ctx, url)}
	}
}

// probeCards checks every card poster of the current page.
func (m Model) probeCards() tea.Cmd {
	if m.deps.Prober == nil || m.results == nil {
		return nil
	}
	var cmds []tea.Cmd
	for i := range m.results.Cards {
		p := m.results.Cards[i].Poster
		if p.IsPlaceholder() {
			continue
		}
		gen, index, url := m.listGen, i, p.URL
		cmds = append(cmds, func() tea.Msg {
			return cardPosterMsg{gen: gen, index: index, url: url, err: m.deps.Prober.ProbeImage(m.ctx, url)}
		})
	}
	return tea.Batch(cmds...)
}

func (m Model) openURLCmd(url string) tea.Cmd {
	open := m.deps.OpenURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openedMsg{err: err}
		}
		return nil
	}
}

// openURL opens url with the platform's default handler.
func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(context.Background(), "open", url).Start()
	case "linux":
		return exec.CommandContext(context.Background(), "xdg-open", url).Start()
	case "windows":
		return exec.CommandContext(context.Background(), "rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return fmt.Errorf("unsupported OS for opening browser: %s", runtime.GOOS)
	}
}
