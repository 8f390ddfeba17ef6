package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("show task", args[0])
			if err != nil {
				return err
			}
			return a.withTasks(func(_ *sqlite.Backend, tasks types.TaskTable) error {
				task, found, err := tasks.Get(id)
				if err != nil {
					return err
				}
				if !found {
					return taskNotFound("show task", id)
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), task)
				}
				printTask(cmd.OutOrStdout(), task)
				return nil
			})
		},
	}
}
