package sqlite

import "time"

// pragmas are applied to every new connection.
const pragmas = `
	PRAGMA foreign_keys = ON;
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = NORMAL;
	PRAGMA busy_timeout = 5000;
`

// Schema DDL. status is free text; the application restricts its values.
const (
	createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'ToDo',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Index DDL for the list orderings.
const (
	idxTasksStatus  = `CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`
	idxTasksCreated = `CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at, id);`
	idxTasksUpdated = `CREATE INDEX IF NOT EXISTS idx_tasks_updated ON tasks(updated_at, id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createTasks,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTasksStatus,
	idxTasksCreated,
	idxTasksUpdated,
}

// timeLayout is fixed-width ISO-8601 so that text order equals time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
