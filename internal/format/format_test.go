package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tasklist/internal/model"
)

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: 1}, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteJSON_Envelope(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: map[string]any{"count": 2}}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := buf.String(), "{\"data\":{\"count\":2}}\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestWriteEDN_KebabCaseKeywords(t *testing.T) {
	t.Parallel()

	task := model.Task{
		ID:        "task-abcdefgh",
		Title:     "Buy milk",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	var buf bytes.Buffer
	if err := WriteEDN(&buf, Envelope{Data: model.IndexedTask{Index: 0, Task: task}}, false); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`:data {`, `:index 0`, `:created-at "2026-01-02T03:04:05Z"`, `:title "Buy milk"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in EDN output:\n%s", want, out)
		}
	}
	if strings.Contains(out, ":meta") {
		t.Fatalf("empty meta should be omitted:\n%s", out)
	}
}

func TestWriteText_Rows(t *testing.T) {
	t.Setenv("COLUMNS", "40")

	rows := []model.IndexedTask{}
	for i, title := range []string{"A", "B", "a very long title that will not fit in forty columns"} {
		rows = append(rows, model.IndexedTask{Index: i, Task: model.Task{ID: "task-0000000" + string(rune('1'+i)), Title: title}})
	}
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: rows}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines; got %q", buf.String())
	}
	if lines[0] != "0  task-00000001  A" {
		t.Fatalf("unexpected first row: %q", lines[0])
	}
	if !strings.HasSuffix(lines[2], "…") {
		t.Fatalf("expected truncated last row; got %q", lines[2])
	}
}

func TestWriteText_EmptyList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteText(&buf, Envelope{Data: []model.IndexedTask{}}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if got := buf.String(); got != "(no tasks)\n" {
		t.Fatalf("got %q", got)
	}
}
