package types

// Board is the storage handle for a kanban board. Callers attach once at
// startup, use Tasks for every operation, and detach exactly once at shutdown.
type Board interface {
	// Attach opens the backend described by config, creating the DataDir
	// if it does not exist. Returns ErrAlreadyAttached if already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, task operations fail with ErrBoardDetached.
	Detach() error

	// Tasks returns the task table. Returns ErrBoardDetached when detached.
	Tasks() (TaskTable, error)
}

// TaskTable provides validated CRUD and filtered, sorted retrieval of tasks.
// Every mutating call is atomic.
type TaskTable interface {
	// Create stores a new task and returns its id. An empty title fails with
	// a validation error; an unrecognised status is stored as StatusToDo.
	Create(title, description, status string) (int64, error)

	// Get returns the task with the given id. found is false when the id is
	// unknown; that is not an error.
	Get(id int64) (task *Task, found bool, err error)

	// List returns the tasks matching q in the order q.SortBy selects.
	// Unknown sort keys fall back to DefaultSortKey.
	List(q ListQuery) ([]*Task, error)

	// Update applies the provided fields of u. It returns false when the id
	// is unknown, true when the task exists and the update was applied
	// (including the no-field no-op).
	Update(id int64, u TaskUpdate) (bool, error)

	// Delete removes the task and reports whether it existed.
	Delete(id int64) (bool, error)

	// Count returns the number of stored tasks.
	Count() (int, error)
}
