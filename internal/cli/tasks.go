package cli

import (
	"strings"

	"tasklist/internal/model"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in order, with their index",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := openManager(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := m.Items()
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]model.IndexedTask, 0, len(tasks))
			for i, t := range tasks {
				out = append(out, model.IndexedTask{Index: i, Task: t})
			}
			return writeOut(cmd, app, envelope(out, map[string]any{"count": len(out)}))
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Append a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := openManager(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, idx, err := m.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(model.IndexedTask{Index: idx, Task: t}, map[string]any{"count": m.Count()}))
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <index> <title...>",
		Short: "Change the title of the task at index",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			m, _, err := openManager(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := m.Rename(cmd.Context(), idx, strings.Join(args[1:], " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(model.IndexedTask{Index: idx, Task: t}, nil))
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"delete"},
		Short:   "Delete the task at index (later tasks shift up)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			m, _, err := openManager(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := m.ItemAt(idx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := m.Delete(cmd.Context(), idx); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(model.IndexedTask{Index: idx, Task: t}, map[string]any{"count": m.Count()}))
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Show the task at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			m, _, err := openManager(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := m.ItemAt(idx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(model.IndexedTask{Index: idx, Task: t}, nil))
		},
	}
}
