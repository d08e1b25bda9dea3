package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hisahi/lrg/internal/engine"
)

// Init initializes the TUI model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// Run launches the interactive range viewer for the given file.
func Run(fileName string, opts engine.Options) error {
	m := InitialModel(fileName, opts)
	p := tea.NewProgram(&teaModelAdapter{m}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}

// teaModelAdapter adapts our model to the tea.Model interface using Update
// and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
