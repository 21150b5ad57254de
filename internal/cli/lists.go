package cli

import (
	"tasklist/internal/store"

	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show known lists and the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store.ListNames()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			current := cfg.CurrentList
			if current == "" {
				current = store.DefaultListName
			}
			return writeOut(cmd, app, envelope(map[string]any{
				"lists":   names,
				"current": current,
			}, nil, "tasklist lists use <name>"))
		},
	}

	cmd.AddCommand(newListsUseCmd(app))
	return cmd
}

func newListsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make <name> the current list (created on first write)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeListName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.CurrentList = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			dir, err := store.ListDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(map[string]any{"current": name, "dir": dir}, nil))
		},
	}
}
