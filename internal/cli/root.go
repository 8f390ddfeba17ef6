// Package cli implements the kanban command-line interface, the front end
// that drives the task store and the preference store.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	prefsFile string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
	log       *logrus.Logger

	// interactive reports whether r is a terminal we can prompt on.
	interactive func(r io.Reader) bool
}

func newApp() *app {
	return &app{
		log:         logrus.New(),
		interactive: isTerminal,
	}
}

// NewRootCmd creates the top-level "kanban" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kanban",
		Short: "A single-user kanban task tracker",
		Long: `kanban keeps tasks in three columns (To Do, In Progress, Done) in a local
SQLite database, with search and sort settings remembered between sessions.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/kanban)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.kanban-db)")
	root.PersistentFlags().StringVar(&a.flags.prefsFile, "prefs-file", "", "preferences file (default: <config-dir>/kanban_preferences.json)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newAddCmd(),
		a.newShowCmd(),
		a.newListCmd(),
		a.newUpdateCmd(),
		a.newMoveCmd(),
		a.newDeleteCmd(),
		a.newBoardCmd(),
		a.newPrefsCmd(),
		a.newExportCmd(),
		a.newImportCmd(),
	)
	return root
}

// setup resolves the config directory, loads config.yaml, and configures
// logging before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := resolveConfigDir(a.flags.configDir)
	if err != nil {
		return types.Storage("resolve config dir", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return types.Storage("load config", err)
	}
	a.configDir = configDir
	a.cfg = cfg

	level, err := logrus.ParseLevel(cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		a.log.WithError(err).Warn("invalid log_level in config, using info")
		level = logrus.InfoLevel
	}
	if a.flags.verbose {
		level = logrus.DebugLevel
	}
	a.log.SetLevel(level)
	a.log.WithField("config_dir", configDir).Debug("loaded configuration")
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	return exitCode(err)
}

// exitCode maps an error to the process exit code: storage failures are
// system errors, everything else (validation, not found, usage) is the user's.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case types.IsStorage(err):
		return exitSysError
	default:
		return exitUserError
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// errAborted is returned when the user declines a confirmation prompt.
var errAborted = errors.New("aborted")
