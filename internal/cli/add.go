package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newAddCmd() *cobra.Command {
	var description, status string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Long: `Create a task with the given title. Title and description are trimmed;
an empty title is rejected. An unrecognised --status places the task in To Do.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTasks(func(_ *sqlite.Backend, tasks types.TaskTable) error {
				id, err := tasks.Create(args[0], description, status)
				if err != nil {
					return err
				}
				task, found, err := tasks.Get(id)
				if err != nil {
					return err
				}
				if !found {
					return taskNotFound("add task", id)
				}
				a.log.WithField("id", id).Debug("created task")

				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), task)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created task %d: %s\n", task.ID, task.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&status, "status", string(types.StatusToDo), "initial status: ToDo, InProgress, Done")
	return cmd
}
