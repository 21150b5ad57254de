package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tasklist/internal/docs"
	"tasklist/internal/model"
	"tasklist/internal/store"
	"tasklist/internal/tasklist"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeRename
	modeConfirmDelete
	modeHelp
)

// Mutation results. Each carries the delta the list needs to re-render.
type (
	taskCreatedMsg struct {
		task  model.Task
		index int
		err   error
	}
	taskRenamedMsg struct {
		task  model.Task
		index int
		err   error
	}
	taskDeletedMsg struct {
		id    string
		index int
		err   error
	}
	reloadedMsg struct {
		err error
	}
)

type appModel struct {
	ctx   context.Context
	mgr   *tasklist.Manager
	state StateStore
	opts  Options

	width  int
	height int

	mode  mode
	list  list.Model
	input textinput.Model

	// editIndex is the row a rename/delete modal was opened for.
	editIndex     int
	confirmFocus  confirmModalFocus
	busy          bool
	status        string
	statusIsError bool
}

func newAppModel(mgr *tasklist.Manager, state StateStore, opts Options) appModel {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 500
	in.Cursor.Style = lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent)

	m := appModel{
		ctx:   context.Background(),
		mgr:   mgr,
		state: state,
		opts:  opts,
		list:  newList(nil),
		input: in,
	}
	m.refresh(-1)
	m.restoreSelection()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// refresh re-reads the mirror and selects the given row (clamped). A negative
// index keeps the current selection.
func (m *appModel) refresh(selectIndex int) {
	tasks, err := m.mgr.Items()
	if err != nil {
		m.setError(err)
		return
	}
	if selectIndex < 0 {
		selectIndex = m.list.Index()
	}
	m.list.SetItems(taskItems(tasks))
	if n := len(tasks); n > 0 {
		if selectIndex >= n {
			selectIndex = n - 1
		}
		m.list.Select(selectIndex)
	}
}

func (m *appModel) restoreSelection() {
	if m.state == nil {
		return
	}
	st, err := m.state.LoadTUIState()
	if err != nil || st == nil || st.SelectedTaskID == "" {
		return
	}
	if i := m.indexOfID(st.SelectedTaskID); i >= 0 {
		m.list.Select(i)
	}
}

func (m appModel) indexOfID(id string) int {
	for i, it := range m.list.Items() {
		if ti, ok := it.(taskItem); ok && ti.task.ID == id {
			return i
		}
	}
	return -1
}

func (m appModel) selectedTask() (model.Task, bool) {
	ti, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return ti.task, true
}

func (m *appModel) saveState() {
	if m.state == nil {
		return
	}
	st := &store.TUIState{Version: 1}
	if t, ok := m.selectedTask(); ok {
		st.SelectedTaskID = t.ID
	}
	// Best-effort: losing the cursor position is not worth blocking quit.
	_ = m.state.SaveTUIState(st)
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusIsError = false
}

func (m *appModel) setError(err error) {
	m.statusIsError = true
	switch {
	case errors.Is(err, store.ErrNotFound):
		m.status = "task no longer exists (press r to reload)"
	case errors.Is(err, tasklist.ErrIndexOutOfRange):
		m.status = "list changed (press r to reload)"
	default:
		m.status = err.Error()
	}
}

func (m *appModel) resize() {
	listH := m.height - 3 // header + rule + footer
	if listH < 1 {
		listH = 1
	}
	idx := m.list.Index()
	m.list.SetSize(m.width, listH)
	m.list.Select(idx)
	m.input.Width = modalBodyWidth(m.width) - 3
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case taskCreatedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.refresh(msg.index)
		m.setStatus(fmt.Sprintf("added %s", msg.task.ID))
		return m, nil

	case taskRenamedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.refresh(msg.index)
		m.setStatus(fmt.Sprintf("renamed %s", msg.task.ID))
		return m, nil

	case taskDeletedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		// The row after the deleted one shifts into its slot.
		m.refresh(msg.index)
		m.setStatus(fmt.Sprintf("deleted %s", msg.id))
		return m, nil

	case reloadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		selected, hadSelection := m.selectedTask()
		m.refresh(-1)
		if hadSelection {
			if i := m.indexOfID(selected.ID); i >= 0 {
				m.list.Select(i)
			}
		}
		m.setStatus("reloaded")
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeRename:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	if m.mode == modeAdd || m.mode == modeRename {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.saveState()
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
		return m, nil
	case "r":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.reloadCmd()
	case "a":
		if m.busy {
			return m, nil
		}
		m.mode = modeAdd
		m.input.SetValue("")
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd
	case "e", "enter":
		t, ok := m.selectedTask()
		if !ok || m.busy {
			return m, nil
		}
		m.mode = modeRename
		m.editIndex = m.list.Index()
		m.input.SetValue(t.Title)
		m.input.CursorEnd()
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd
	case "d", "delete":
		if _, ok := m.selectedTask(); !ok || m.busy {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.editIndex = m.list.Index()
		m.confirmFocus = confirmFocusCancel
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		return m, nil
	case "enter":
		title := m.input.Value()
		if strings.TrimSpace(title) == "" {
			// Stay in the prompt; the manager would reject it anyway.
			m.statusIsError = true
			m.status = "title is empty"
			return m, nil
		}
		cmd := m.createCmd(title)
		if m.mode == modeRename {
			cmd = m.renameCmd(m.editIndex, title)
		}
		m.closeModal()
		m.busy = true
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n", "q":
		m.closeModal()
		return m, nil
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
		fallthrough
	case "enter":
		if m.confirmFocus != confirmFocusConfirm {
			m.closeModal()
			return m, nil
		}
		idx := m.editIndex
		m.closeModal()
		m.busy = true
		return m, m.deleteCmd(idx)
	}
	return m, nil
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.saveState()
		return m, tea.Quit
	case "esc", "?", "q", "enter":
		m.mode = modeList
	}
	return m, nil
}

func (m *appModel) closeModal() {
	m.mode = modeList
	m.input.Blur()
	m.input.SetValue("")
	if m.statusIsError {
		m.status = ""
		m.statusIsError = false
	}
}

func (m appModel) createCmd(title string) tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		t, idx, err := mgr.Create(ctx, title)
		return taskCreatedMsg{task: t, index: idx, err: err}
	}
}

func (m appModel) renameCmd(index int, title string) tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		t, err := mgr.Rename(ctx, index, title)
		return taskRenamedMsg{task: t, index: index, err: err}
	}
}

func (m appModel) deleteCmd(index int) tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		t, err := mgr.ItemAt(index)
		if err != nil {
			return taskDeletedMsg{index: index, err: err}
		}
		err = mgr.Delete(ctx, index)
		return taskDeletedMsg{id: t.ID, index: index, err: err}
	}
}

func (m appModel) reloadCmd() tea.Cmd {
	mgr, ctx := m.mgr, m.ctx
	return func() tea.Msg {
		return reloadedMsg{err: mgr.Load(ctx)}
	}
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.viewHeader()
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), m.width))
	bodyH := m.height - 3
	if bodyH < 1 {
		bodyH = 1
	}

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = styleMuted().Render("  No tasks yet. Press a to add one.")
	}

	if modal := m.viewModal(); modal != "" {
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, modal,
			lipgloss.WithWhitespaceChars(" "))
	}

	return strings.Join([]string{
		normalizePane(header, m.width, 1),
		normalizePane(rule, m.width, 1),
		normalizePane(body, m.width, bodyH),
		normalizePane(m.viewFooter(), m.width, 1),
	}, "\n")
}

func (m appModel) viewHeader() string {
	name := m.opts.ListName
	if name == "" {
		name = "tasks"
	}
	count := fmt.Sprintf("%d task", m.mgr.Count())
	if m.mgr.Count() != 1 {
		count += "s"
	}
	return styleHeader().Render(name) + "  " + styleMuted().Render(count)
}

func (m appModel) viewFooter() string {
	if m.status != "" {
		if m.statusIsError {
			return styleError().Render(m.status)
		}
		return m.status
	}
	return styleMuted().Render("a add  e rename  d delete  r reload  ? help  q quit")
}

func (m appModel) viewModal() string {
	switch m.mode {
	case modeAdd:
		return renderInputModal(m.width, "New task", m.input.View(), m.inputError())
	case modeRename:
		return renderInputModal(m.width, fmt.Sprintf("Rename task %d", m.editIndex), m.input.View(), m.inputError())
	case modeConfirmDelete:
		title := ""
		if items := m.list.Items(); m.editIndex < len(items) {
			if it, ok := items[m.editIndex].(taskItem); ok {
				title = it.task.Title
			}
		}
		return renderConfirmModal(m.width, "Delete task?", fmt.Sprintf("%d  %s", m.editIndex, title), "Delete", "Cancel", m.confirmFocus)
	case modeHelp:
		body, ok := docs.Get("keys")
		if !ok {
			body = "No help available."
		}
		return renderModalBox(m.width, "Help", renderMarkdown(body, modalBodyWidth(m.width)))
	}
	return ""
}

func (m appModel) inputError() string {
	if m.statusIsError {
		return m.status
	}
	return ""
}
