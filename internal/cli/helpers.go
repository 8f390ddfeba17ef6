package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/paths"
	"github.com/mesh-intelligence/kanban/internal/prefs"
	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// backendConfig resolves the data directory and backend from flags and
// config.yaml.
func (a *app) backendConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, types.Storage("resolve data dir", err)
	}
	return types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}, nil
}

// withTasks attaches the backend for the duration of fn and always detaches
// it afterwards, even when fn fails.
func (a *app) withTasks(fn func(b *sqlite.Backend, tasks types.TaskTable) error) (err error) {
	cfg, err := a.backendConfig()
	if err != nil {
		return err
	}

	b := sqlite.NewBackend()
	if err := b.Attach(cfg); err != nil {
		if !types.IsStorage(err) {
			err = types.Storage("attach backend", err)
		}
		return err
	}
	a.log.WithField("data_dir", cfg.DataDir).Debug("attached backend")
	defer func() {
		if derr := b.Detach(); derr != nil {
			a.log.WithError(derr).Error("detach backend")
			if err == nil {
				err = derr
			}
		}
	}()

	tasks, err := b.Tasks()
	if err != nil {
		return types.Storage("open tasks", err)
	}
	return fn(b, tasks)
}

// prefsStore returns the preference store for this invocation.
func (a *app) prefsStore() *prefs.Store {
	path, err := paths.ResolvePreferencesFile(a.flags.prefsFile, a.cfg.GetString(cfgKeyPrefsFile), a.configDir)
	if err != nil {
		a.log.WithError(err).Warn("could not resolve preferences file, using config dir")
		path = paths.DefaultPreferencesFile
	}
	return prefs.New(path, a.log)
}

// resolveQuery merges explicit --search/--sort flags over the stored
// preferences and saves them back when either flag was given.
func (a *app) resolveQuery(cmd *cobra.Command, search, sortBy string) types.ListQuery {
	store := a.prefsStore()
	p := store.Load()

	changed := false
	if cmd.Flags().Changed("search") {
		p.SearchTerm = search
		changed = true
	}
	if cmd.Flags().Changed("sort") {
		p.SortBy = types.SortKey(sortBy)
		changed = true
	}
	if !p.SortBy.Valid() {
		a.log.WithField("sort_by", p.SortBy).Warnf("unknown sort key, using %s", types.DefaultSortKey)
	}
	if changed {
		store.Save(p.SearchTerm, p.SortBy)
	}
	return p.Query()
}

func addQueryFlags(cmd *cobra.Command, search, sortBy *string) {
	cmd.Flags().StringVarP(search, "search", "s", "", "only tasks whose title or description contains this text (saved)")
	cmd.Flags().StringVar(sortBy, "sort", string(types.DefaultSortKey), "sort order: created_desc, created_asc, updated_desc, updated_asc, title_asc, title_desc (saved)")
}

// parseID parses a task id argument.
func parseID(op, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, types.Validation(op, fmt.Errorf("%w %q", types.ErrInvalidID, arg))
	}
	return id, nil
}

// taskNotFound builds the error reported when an id does not exist.
func taskNotFound(op string, id int64) error {
	return types.NotFound(op, fmt.Errorf("task %d not found", id))
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
