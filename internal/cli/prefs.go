package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func (a *app) newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the saved search and sort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printPrefs(cmd, a.prefsStore().Load())
		},
	}
	cmd.AddCommand(a.newPrefsSetCmd(), a.newPrefsClearCmd())
	return cmd
}

func (a *app) newPrefsSetCmd() *cobra.Command {
	var search, sortBy string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save a search term and sort order without listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.resolveQuery(cmd, search, sortBy)
			return a.printPrefs(cmd, a.prefsStore().Load())
		},
	}

	addQueryFlags(cmd, &search, &sortBy)
	return cmd
}

func (a *app) newPrefsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved search and sort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.prefsStore().Clear()
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), types.DefaultPreferences())
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Preferences cleared")
			return nil
		},
	}
}

func (a *app) printPrefs(cmd *cobra.Command, p types.Preferences) error {
	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "search: %q\n", p.SearchTerm)
	fmt.Fprintf(cmd.OutOrStdout(), "sort:   %s\n", p.SortBy)
	fmt.Fprintf(cmd.OutOrStdout(), "file:   %s\n", a.prefsStore().Path())
	return nil
}
