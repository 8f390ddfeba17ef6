package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// tasksTable implements types.TaskTable. Each operation validates input,
// then runs against the backend's handle while holding the backend lock.
type tasksTable struct {
	backend *Backend
}

const taskColumns = "id, title, description, status, created_at, updated_at"

// orderClauses maps each sort key to its ORDER BY clause. Ties break on id
// in the same direction so equal timestamps still order deterministically.
var orderClauses = map[types.SortKey]string{
	types.SortCreatedDesc: "created_at DESC, id DESC",
	types.SortCreatedAsc:  "created_at ASC, id ASC",
	types.SortUpdatedDesc: "updated_at DESC, id DESC",
	types.SortUpdatedAsc:  "updated_at ASC, id ASC",
	types.SortTitleAsc:    "title ASC, id ASC",
	types.SortTitleDesc:   "title DESC, id DESC",
}

// Create validates and stores a new task. An unrecognised status is stored
// as ToDo rather than rejected.
func (tt *tasksTable) Create(title, description, status string) (int64, error) {
	const op = "create task"

	name, err := types.NormalizeTitle(title)
	if err != nil {
		return 0, withOp(op, err)
	}
	desc := types.NormalizeDescription(description)
	st := types.NormalizeCreateStatus(status)

	b := tt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return 0, types.Storage(op, types.ErrBoardDetached)
	}

	now := formatTime(b.clock())

	tx, err := b.db.Begin()
	if err != nil {
		return 0, types.Storage(op, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO tasks (title, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		name, desc, string(st), now, now,
	)
	if err != nil {
		return 0, types.Storage(op, fmt.Errorf("inserting task: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, types.Storage(op, fmt.Errorf("reading new task id: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return 0, types.Storage(op, fmt.Errorf("committing task: %w", err))
	}
	return id, nil
}

// Get retrieves a task by id. An unknown id yields found == false.
func (tt *tasksTable) Get(id int64) (*types.Task, bool, error) {
	op := fmt.Sprintf("get task %d", id)

	b := tt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, false, types.Storage(op, types.ErrBoardDetached)
	}

	row := b.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, types.Storage(op, err)
	}
	return task, true, nil
}

// List returns tasks whose title or description contains q.Term(), or every
// task when the term is blank, ordered by q.SortBy.
func (tt *tasksTable) List(q types.ListQuery) ([]*types.Task, error) {
	const op = "list tasks"

	query := "SELECT " + taskColumns + " FROM tasks"
	var args []any
	if term := q.Term(); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		query += ` WHERE title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'`
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY " + orderClauses[q.SortBy.OrDefault()]

	b := tt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.Storage(op, types.ErrBoardDetached)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, types.Storage(op, fmt.Errorf("querying tasks: %w", err))
	}
	defer rows.Close()

	tasks := make([]*types.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, types.Storage(op, err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, types.Storage(op, fmt.Errorf("iterating tasks: %w", err))
	}
	return tasks, nil
}

// Update applies the provided fields of u to task id. The existence check
// comes first, so an unknown id reports false even for invalid input.
func (tt *tasksTable) Update(id int64, u types.TaskUpdate) (bool, error) {
	op := fmt.Sprintf("update task %d", id)

	b := tt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return false, types.Storage(op, types.ErrBoardDetached)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return false, types.Storage(op, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	task, err := scanTask(tx.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, types.Storage(op, err)
	}

	if u.IsEmpty() {
		return true, nil
	}

	changes, err := u.Normalize()
	if err != nil {
		return false, withOp(op, err)
	}
	changes.Apply(task)

	// updated_at never moves backwards, even if the clock does.
	updatedAt := b.clock()
	if updatedAt.Before(task.UpdatedAt) {
		updatedAt = task.UpdatedAt
	}

	res, err := tx.Exec(
		"UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ?",
		task.Title, task.Description, string(task.Status), formatTime(updatedAt), id,
	)
	if err != nil {
		return false, types.Storage(op, fmt.Errorf("updating task: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, types.Storage(op, fmt.Errorf("reading rows affected: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return false, types.Storage(op, fmt.Errorf("committing update: %w", err))
	}
	return n > 0, nil
}

// Delete removes task id and reports whether a row existed.
func (tt *tasksTable) Delete(id int64) (bool, error) {
	op := fmt.Sprintf("delete task %d", id)

	b := tt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return false, types.Storage(op, types.ErrBoardDetached)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return false, types.Storage(op, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return false, types.Storage(op, fmt.Errorf("deleting task: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, types.Storage(op, fmt.Errorf("reading rows affected: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return false, types.Storage(op, fmt.Errorf("committing delete: %w", err))
	}
	return n > 0, nil
}

// Count returns the number of stored tasks.
func (tt *tasksTable) Count() (int, error) {
	const op = "count tasks"

	b := tt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.Storage(op, types.ErrBoardDetached)
	}

	var n int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&n); err != nil {
		return 0, types.Storage(op, err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask hydrates one row. sql.ErrNoRows is returned unwrapped.
func scanTask(row rowScanner) (*types.Task, error) {
	var t types.Task
	var status, createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Status = types.Status(status)
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing task %d created_at: %w", t.ID, err)
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing task %d updated_at: %w", t.ID, err)
	}
	return &t, nil
}

// escapeLike escapes LIKE wildcards so the term matches literally.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// withOp re-tags a lifecycle error with the table operation that raised it.
func withOp(op string, err error) error {
	var e *types.Error
	if errors.As(err, &e) {
		return &types.Error{Kind: e.Kind, Op: op, Err: e.Err}
	}
	return types.Storage(op, err)
}
