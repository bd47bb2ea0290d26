package tui

import (
	"listmerge/internal/board"
	"listmerge/internal/fetch"
	"listmerge/internal/journal"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Options wires the interactive board to its collaborators. Only Source is required.
type Options struct {
	Source   fetch.Source
	Recorder journal.Recorder
	Logger   *zap.Logger
	Routes   []board.Route
	// Theme is "auto", "light" or "dark".
	Theme string
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
