package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func newTestStore(t *testing.T, path string) (*Store, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(path, logger), hook
}

func warnings(hook *test.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	s, hook := newTestStore(t, filepath.Join(t.TempDir(), "prefs.json"))

	assert.Equal(t, types.DefaultPreferences(), s.Load())
	assert.Zero(t, warnings(hook))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		sortBy types.SortKey
	}{
		{name: "search and sort", term: "shop", sortBy: types.SortTitleAsc},
		{name: "empty term", term: "", sortBy: types.SortUpdatedDesc},
		{name: "unicode term", term: "café ☕", sortBy: types.SortCreatedAsc},
		{name: "unknown sort kept verbatim", term: "x", sortBy: "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, hook := newTestStore(t, filepath.Join(t.TempDir(), "prefs.json"))
			s.Save(tt.term, tt.sortBy)

			assert.Equal(t, types.Preferences{SearchTerm: tt.term, SortBy: tt.sortBy}, s.Load())
			assert.Zero(t, warnings(hook))
		})
	}
}

func TestSave_OverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, _ := newTestStore(t, path)

	s.Save("first", types.SortTitleDesc)
	s.Save("second", types.SortCreatedAsc)

	assert.Equal(t, types.Preferences{SearchTerm: "second", SortBy: types.SortCreatedAsc}, s.Load())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, map[string]any{"search_term": "second", "sort_by": "created_asc"}, doc)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSave_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.json")
	s, hook := newTestStore(t, path)

	s.Save("term", types.SortTitleAsc)
	assert.Equal(t, "term", s.Load().SearchTerm)
	assert.Zero(t, warnings(hook))
}

func TestLoad_MissingKeysTakeDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    types.Preferences
	}{
		{
			name:    "only search term",
			content: `{"search_term": "milk"}`,
			want:    types.Preferences{SearchTerm: "milk", SortBy: types.SortCreatedDesc},
		},
		{
			name:    "only sort",
			content: `{"sort_by": "title_desc"}`,
			want:    types.Preferences{SearchTerm: "", SortBy: types.SortTitleDesc},
		},
		{
			name:    "empty object",
			content: `{}`,
			want:    types.DefaultPreferences(),
		},
		{
			name:    "extra keys ignored",
			content: `{"search_term": "a", "sort_by": "updated_asc", "theme": "dark"}`,
			want:    types.Preferences{SearchTerm: "a", SortBy: types.SortUpdatedAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			s, hook := newTestStore(t, path)

			assert.Equal(t, tt.want, s.Load())
			assert.Zero(t, warnings(hook))
		})
	}
}

func TestLoad_CorruptFileWarnsAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"search_term": `), 0o644))
	s, hook := newTestStore(t, path)

	assert.Equal(t, types.DefaultPreferences(), s.Load())
	assert.Equal(t, 1, warnings(hook))
}

func TestSave_UnwritableWarnsOnly(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The parent "directory" is a regular file, so every write fails.
	s, hook := newTestStore(t, filepath.Join(blocker, "prefs.json"))
	assert.NotPanics(t, func() { s.Save("term", types.SortTitleAsc) })
	assert.Equal(t, 1, warnings(hook))

	assert.Equal(t, types.DefaultPreferences(), s.Load())
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, hook := newTestStore(t, path)

	s.Save("term", types.SortTitleAsc)
	s.Clear()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, types.DefaultPreferences(), s.Load())

	s.Clear()
	assert.Zero(t, warnings(hook), "clearing an absent file is not an error")
}

func TestNew_NilLogger(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "p.json"), nil)
	assert.Equal(t, types.DefaultPreferences(), s.Load())
}
