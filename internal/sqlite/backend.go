// Package sqlite implements the SQLite storage backend for kanban boards.
// The database file is the source of truth; JSONL is an export/import format.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// DBFileName is the database file created inside Config.DataDir.
const DBFileName = "kanban.db"

// Compile-time interface checks.
var (
	_ types.Board     = (*Backend)(nil)
	_ types.TaskTable = (*tasksTable)(nil)
)

// Backend implements types.Board on a single long-lived SQLite handle.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tasks    *tasksTable

	// now stamps created_at and updated_at. Tests replace it.
	now func() time.Time
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Tasks returns the task table.
// Returns ErrBoardDetached if the backend is not attached.
func (b *Backend) Tasks() (types.TaskTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrBoardDetached
	}
	return b.tasks, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, opens the database, and applies
// the schema. Existing tasks are kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return types.Storage("create data dir", err)
	}

	db, err := openDB(filepath.Join(dataDir, DBFileName))
	if err != nil {
		return types.Storage("open database", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return types.Storage("apply schema", err)
	}

	b.db = db
	b.config = config
	b.tasks = &tasksTable{backend: b}
	b.attached = true
	return nil
}

// Detach releases all resources held by the backend.
// Closes the SQLite connection. After Detach, all operations return
// ErrBoardDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	b.tasks = nil
	if b.db != nil {
		db := b.db
		b.db = nil
		if err := db.Close(); err != nil {
			return types.Storage("close database", err)
		}
	}
	return nil
}

// openDB opens the database with a single connection. The board has exactly
// one logical caller, so one connection keeps transactions serialized.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(pragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// applySchema creates tables and indexes that do not exist yet.
func applySchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// clock returns the current time in UTC.
func (b *Backend) clock() time.Time {
	return b.now().UTC()
}
