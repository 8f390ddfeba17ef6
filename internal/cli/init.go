package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and an empty task database",
		Long: `Create config.yaml in the config directory and the task database in the
data directory. Running init again keeps existing tasks and settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.backendConfig()
			if err != nil {
				return err
			}
			return a.withTasks(func(_ *sqlite.Backend, tasks types.TaskTable) error {
				n, err := tasks.Count()
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{
						"config_dir": a.configDir,
						"data_dir":   cfg.DataDir,
						"tasks":      n,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Config: %s\n", a.configDir)
				fmt.Fprintf(out, "Data:   %s\n", cfg.DataDir)
				fmt.Fprintf(out, "Tasks:  %d\n", n)
				return nil
			})
		},
	}
}
