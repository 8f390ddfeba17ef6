package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/board"
	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// boardJSON is the --json form of a board snapshot.
type boardJSON struct {
	Search  string        `json:"search"`
	SortBy  types.SortKey `json:"sort_by"`
	Total   int           `json:"total"`
	Columns []columnJSON  `json:"columns"`
}

type columnJSON struct {
	Status types.Status  `json:"status"`
	Title  string        `json:"title"`
	Tasks  []*types.Task `json:"tasks"`
}

func snapshotJSON(snap board.Snapshot) boardJSON {
	out := boardJSON{
		Search:  snap.Query.Term(),
		SortBy:  snap.Query.SortBy,
		Total:   snap.Total(),
		Columns: make([]columnJSON, 0, len(snap.Columns)),
	}
	for _, c := range snap.Columns {
		out.Columns = append(out.Columns, columnJSON{Status: c.Status, Title: c.Title(), Tasks: c.Tasks})
	}
	return out
}

func (a *app) newBoardCmd() *cobra.Command {
	var search, sortBy string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show tasks in To Do, In Progress, and Done columns",
		Long: `Show the board. Search and sort work as for list and are saved the
same way; within each column tasks keep the requested order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := a.resolveQuery(cmd, search, sortBy)
			return a.withTasks(func(_ *sqlite.Backend, tasks types.TaskTable) error {
				snap, err := board.Load(tasks, q)
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), snapshotJSON(snap))
				}
				newRenderer(cmd.OutOrStdout()).printBoard(cmd.OutOrStdout(), snap)
				return nil
			})
		},
	}

	addQueryFlags(cmd, &search, &sortBy)
	return cmd
}
