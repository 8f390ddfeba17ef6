package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/board"
	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another column",
		Long: `Move a task to ToDo, InProgress, or Done. Column labels such as
"In Progress" are accepted too. Any column may move to any other.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("move task", args[0])
			if err != nil {
				return err
			}
			return a.withTasks(func(_ *sqlite.Backend, tasks types.TaskTable) error {
				task, found, err := tasks.Get(id)
				if err != nil {
					return err
				}
				if !found {
					return taskNotFound("move task", id)
				}

				target, err := types.ParseStatus(args[1])
				if err != nil {
					return err
				}
				_, moved, err := board.Begin(task).Drop(tasks, target)
				if err != nil {
					return err
				}
				a.log.WithFields(logrus.Fields{
					"id": id, "from": task.Status, "to": target, "moved": moved,
				}).Debug("dropped task")

				if moved {
					if task, found, err = tasks.Get(id); err != nil {
						return err
					}
					if !found {
						return taskNotFound("move task", id)
					}
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), task)
				}
				if !moved {
					fmt.Fprintf(cmd.OutOrStdout(), "Task %d is already in %s\n", id, target.Label())
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved task %d to %s\n", id, target.Label())
				return nil
			})
		},
	}
}
