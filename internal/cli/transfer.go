package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all tasks as JSON lines",
		Long: `Write every task, ordered by id, one JSON object per line. With no file
the lines go to standard output; a file is replaced atomically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTasks(func(b *sqlite.Backend, _ types.TaskTable) error {
				if len(args) == 0 || args[0] == "-" {
					_, err := b.ExportJSONL(cmd.OutOrStdout())
					return err
				}
				n, err := b.ExportFile(args[0])
				if err != nil {
					return err
				}
				a.log.WithField("file", args[0]).Debug("exported tasks")
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"file": args[0], "exported": n})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", n, args[0])
				return nil
			})
		},
	}
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load tasks from JSON lines",
		Long: `Read tasks written by export. A task whose id already exists is
replaced; lines that cannot be parsed or have a blank title are skipped.
Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTasks(func(b *sqlite.Backend, _ types.TaskTable) error {
				var (
					res sqlite.ImportResult
					err error
				)
				if args[0] == "-" {
					res, err = b.ImportJSONL(cmd.InOrStdin())
				} else {
					res, err = b.ImportFile(args[0])
				}
				if err != nil {
					return err
				}
				if res.Skipped > 0 {
					a.log.WithField("skipped", res.Skipped).Warn("some lines were not imported")
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks (%d skipped)\n", res.Imported, res.Skipped)
				return nil
			})
		},
	}
}
