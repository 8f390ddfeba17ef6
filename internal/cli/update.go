package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newUpdateCmd() *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a task's title, description, or status",
		Long: `Apply a partial update to a task. Only the flags given are changed.
An invalid value rejects the whole update and leaves the task untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("update task", args[0])
			if err != nil {
				return err
			}

			var u types.TaskUpdate
			if cmd.Flags().Changed("title") {
				u.Title = types.StringPtr(title)
			}
			if cmd.Flags().Changed("description") {
				u.Description = types.StringPtr(description)
			}
			if cmd.Flags().Changed("status") {
				u.Status = types.StringPtr(status)
			}

			return a.withTasks(func(_ *sqlite.Backend, tasks types.TaskTable) error {
				ok, err := tasks.Update(id, u)
				if err != nil {
					return err
				}
				if !ok {
					return taskNotFound("update task", id)
				}
				task, found, err := tasks.Get(id)
				if err != nil {
					return err
				}
				if !found {
					return taskNotFound("update task", id)
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), task)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated task %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description (empty clears it)")
	cmd.Flags().StringVar(&status, "status", "", "new status: ToDo, InProgress, Done")
	return cmd
}
