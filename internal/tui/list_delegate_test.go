package tui

import (
	"bytes"
	"strings"
	"testing"

	"tasklist/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestCompactDelegateRendersPositionAndTitle(t *testing.T) {
	defer setGlyphs(glyphSetUnicode)
	setGlyphs(glyphSetASCII)

	l := newList(taskItems([]model.Task{
		{ID: "task-aaaaaaaa", Title: "first"},
		{ID: "task-bbbbbbbb", Title: "second"},
	}))
	l.SetSize(30, 5)
	l.Select(1)

	d := newCompactItemDelegate()
	want := []string{"  0  first", "> 1  second"}
	for i, it := range l.Items() {
		var buf bytes.Buffer
		d.Render(&buf, l, i, it)
		got := strings.TrimRight(xansi.Strip(buf.String()), " ")
		if got != want[i] {
			t.Fatalf("row %d = %q, want %q", i, got, want[i])
		}
	}
}
