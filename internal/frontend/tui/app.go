package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimtrunov/reelview/internal/core"
)

// App runs the Model as a full-screen program.
type App struct {
	deps Deps
	opts []tea.ProgramOption
}

var _ core.Frontend = (*App)(nil)

// NewApp creates the terminal frontend. Extra options are appended to the
// alt-screen and mouse defaults.
func NewApp(deps Deps, opts ...tea.ProgramOption) *App {
	return &App{deps: deps, opts: opts}
}

// Name returns the frontend name.
func (a *App) Name() string { return "tui" }

// Start runs the program until the user quits or ctx is canceled.
func (a *App) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, a.opts...)
	p := tea.NewProgram(New(ctx, a.deps), opts...)

	// Bridge cancellation into the Bubble Tea event loop.
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
