package format

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tasklist/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

const defaultTextWidth = 100

// WriteText renders task payloads as aligned rows (index, id, title).
// Payloads it does not know fall back to pretty JSON.
func WriteText(w io.Writer, v any) error {
	data := v
	if env, ok := v.(Envelope); ok {
		data = env.Data
	}

	switch d := data.(type) {
	case []model.IndexedTask:
		if len(d) == 0 {
			_, err := fmt.Fprintln(w, "(no tasks)")
			return err
		}
		width := textWidth()
		idxW := len(strconv.Itoa(len(d) - 1))
		for _, it := range d {
			if _, err := fmt.Fprintln(w, textRow(it, idxW, width)); err != nil {
				return err
			}
		}
		return nil
	case model.IndexedTask:
		_, err := fmt.Fprintln(w, textRow(d, len(strconv.Itoa(d.Index)), textWidth()))
		return err
	default:
		return WriteJSON(w, v, true)
	}
}

func textRow(it model.IndexedTask, idxW, width int) string {
	prefix := fmt.Sprintf("%*d  %s  ", idxW, it.Index, it.Task.ID)
	title := strings.ReplaceAll(it.Task.Title, "\n", " ")
	room := width - xansi.StringWidth(prefix)
	if room < 8 {
		room = 8
	}
	return prefix + xansi.Truncate(title, room, "…")
}

func textWidth() int {
	if v := strings.TrimSpace(os.Getenv("COLUMNS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 20 {
			return n
		}
	}
	return defaultTextWidth
}
