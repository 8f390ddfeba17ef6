package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newListCmd() *cobra.Command {
	var search, sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks matching the search term in the requested order.
Without --search or --sort the last saved preferences apply; giving either
flag saves it for next time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := a.resolveQuery(cmd, search, sortBy)
			return a.withTasks(func(_ *sqlite.Backend, tasks types.TaskTable) error {
				list, err := tasks.List(q)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), list)
				}
				newRenderer(cmd.OutOrStdout()).printTaskTable(cmd.OutOrStdout(), list)
				return nil
			})
		},
	}

	addQueryFlags(cmd, &search, &sortBy)
	return cmd
}
