package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// errConfirmRequired is returned when deletion needs --yes and stdin is not a
// terminal to prompt on.
var errConfirmRequired = errors.New("refusing to delete without --yes when stdin is not a terminal")

func (a *app) newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task permanently",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("delete task", args[0])
			if err != nil {
				return err
			}
			return a.withTasks(func(_ *sqlite.Backend, tasks types.TaskTable) error {
				task, found, err := tasks.Get(id)
				if err != nil {
					return err
				}
				if !found {
					return taskNotFound("delete task", id)
				}

				if !yes {
					if !a.interactive(cmd.InOrStdin()) {
						return types.Validation("delete task", errConfirmRequired)
					}
					ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
						fmt.Sprintf("Delete task %d %q?", task.ID, task.Title))
					if err != nil {
						return err
					}
					if !ok {
						return types.Validation("delete task", errAborted)
					}
				}

				deleted, err := tasks.Delete(id)
				if err != nil {
					return err
				}
				if !deleted {
					return taskNotFound("delete task", id)
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": true})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything other than y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
