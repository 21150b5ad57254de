package tui

import (
	"tasklist/internal/store"
	"tasklist/internal/tasklist"

	tea "github.com/charmbracelet/bubbletea"
)

// Options carries presentation preferences resolved by the CLI.
type Options struct {
	// ListName is shown in the header; empty when the list was opened by --dir.
	ListName string
	// Glyphs is the config preference ("unicode" or "ascii").
	Glyphs string
}

// StateStore persists small UI state between runs. store.Store implements it.
type StateStore interface {
	LoadTUIState() (*store.TUIState, error)
	SaveTUIState(st *store.TUIState) error
}

// Run starts the interactive program over an already loaded manager.
func Run(mgr *tasklist.Manager, state StateStore, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(mgr, state, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
