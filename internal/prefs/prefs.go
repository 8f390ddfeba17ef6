// Package prefs persists the last-used search and sort settings in a small
// JSON side file, independent of task data. Every I/O failure is downgraded
// to a warning: callers always get a usable record and are never interrupted.
package prefs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Keys in the preferences file.
const (
	keySearchTerm = "search_term"
	keySortBy     = "sort_by"
)

// Store reads and writes the preferences file at a fixed path.
type Store struct {
	path string
	log  logrus.FieldLogger
}

// New returns a Store for path. A nil logger uses the logrus standard logger.
func New(path string, logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{
		path: path,
		log:  logger.WithField("preferences", path),
	}
}

// Path returns the preferences file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted record. Missing keys take their defaults. A
// missing file yields the defaults silently; unreadable or corrupt content
// yields the defaults with a warning.
func (s *Store) Load() types.Preferences {
	defaults := types.DefaultPreferences()

	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("no preferences file, using defaults")
		} else {
			s.log.WithError(err).Warn("could not load preferences")
		}
		return defaults
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetDefault(keySearchTerm, defaults.SearchTerm)
	v.SetDefault(keySortBy, string(defaults.SortBy))

	if err := v.ReadInConfig(); err != nil {
		s.log.WithError(err).Warn("could not load preferences")
		return defaults
	}

	return types.Preferences{
		SearchTerm: v.GetString(keySearchTerm),
		SortBy:     types.SortKey(v.GetString(keySortBy)),
	}
}

// Save overwrites the persisted record with searchTerm and sortBy. The file
// is replaced atomically; failures are logged and swallowed.
func (s *Store) Save(searchTerm string, sortBy types.SortKey) {
	if err := s.write(searchTerm, sortBy); err != nil {
		s.log.WithError(err).Warn("could not save preferences")
		return
	}
	s.log.WithFields(logrus.Fields{
		keySearchTerm: searchTerm,
		keySortBy:     sortBy,
	}).Debug("saved preferences")
}

// Clear removes the persisted record. A missing file is not an error.
func (s *Store) Clear() {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.WithError(err).Warn("could not clear preferences")
	}
}

func (s *Store) write(searchTerm string, sortBy types.SortKey) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set(keySearchTerm, searchTerm)
	v.Set(keySortBy, string(sortBy))

	// The temp name keeps a .json extension so viper picks the JSON codec.
	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+".tmp.json")
	if err := v.WriteConfigAs(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
