package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// compactItemDelegate renders one line per task: cursor, index, title.
type compactItemDelegate struct {
	normal   lipgloss.Style
	index    lipgloss.Style
	selected lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle(),
		index:  styleMuted(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	title := ""
	if it, ok := item.(taskItem); ok {
		title = it.task.Title
	} else {
		title = fmt.Sprint(item)
	}
	title = strings.ReplaceAll(title, "\n", " ")

	idxW := len(strconv.Itoa(len(m.Items()) - 1))
	cursor := " "
	if index == m.Index() {
		cursor = glyphCursor()
	}
	prefix := fmt.Sprintf("%s %*d  ", cursor, idxW, index)

	room := contentW - xansi.StringWidth(prefix)
	if room < 1 {
		room = 1
	}
	title = xansi.Truncate(title, room, glyphEllipsis())

	if index == m.Index() {
		line := prefix + title
		if pad := contentW - xansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		fmt.Fprint(w, d.selected.Render(line))
		return
	}
	fmt.Fprint(w, d.index.Render(prefix)+d.normal.Render(title))
}
