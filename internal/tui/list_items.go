package tui

import (
	"tasklist/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

// taskItem is one row of the list; its display index is its position in the list.
type taskItem struct {
	task model.Task
}

func (it taskItem) FilterValue() string { return it.task.Title }
func (it taskItem) Title() string       { return it.task.Title }
func (it taskItem) Description() string { return it.task.ID }

func taskItems(tasks []model.Task) []list.Item {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	return items
}

func newList(items []list.Item) list.Model {
	l := list.New(items, newCompactItemDelegate(), 0, 0)
	// Header and footer are ours; keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("task", "tasks")

	// Emacs-style navigation aliases.
	l.KeyMap.CursorUp.SetKeys(append(l.KeyMap.CursorUp.Keys(), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(l.KeyMap.CursorDown.Keys(), "ctrl+n")...)
	l.KeyMap.GoToStart.SetKeys(append(l.KeyMap.GoToStart.Keys(), "<")...)
	l.KeyMap.GoToEnd.SetKeys(append(l.KeyMap.GoToEnd.Keys(), ">")...)
	return l
}
