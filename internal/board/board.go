// Package board turns task snapshots into the three status columns and
// carries the transient drag state between gesture start and drop.
package board

import (
	"fmt"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// Column is one status column of a snapshot.
type Column struct {
	Status types.Status
	Tasks  []*types.Task
}

// Title returns the column header.
func (c Column) Title() string {
	return c.Status.Label()
}

// Snapshot is the board as returned by one query.
type Snapshot struct {
	Query   types.ListQuery
	Columns []Column
}

// Total returns the number of tasks across all columns.
func (s Snapshot) Total() int {
	n := 0
	for _, c := range s.Columns {
		n += len(c.Tasks)
	}
	return n
}

// Column returns the column for status, or an empty one if status is invalid.
func (s Snapshot) Column(status types.Status) Column {
	for _, c := range s.Columns {
		if c.Status == status {
			return c
		}
	}
	return Column{Status: status}
}

// Columns groups tasks by status in board order. Input order is preserved
// within each column. Tasks with an unrecognised status land in To Do.
func Columns(tasks []*types.Task) []Column {
	cols := make([]Column, 0, len(types.Statuses()))
	index := make(map[types.Status]int, len(types.Statuses()))
	for i, st := range types.Statuses() {
		cols = append(cols, Column{Status: st, Tasks: []*types.Task{}})
		index[st] = i
	}
	for _, t := range tasks {
		i, ok := index[t.Status]
		if !ok {
			i = index[types.StatusToDo]
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
	}
	return cols
}

// Load fetches the tasks matching q and groups them into columns.
func Load(table types.TaskTable, q types.ListQuery) (Snapshot, error) {
	tasks, err := table.List(q)
	if err != nil {
		return Snapshot{}, err
	}
	q.SortBy = q.SortBy.OrDefault()
	return Snapshot{Query: q, Columns: Columns(tasks)}, nil
}

// Move sets the status of task id. It reports false when the task does not
// exist; an invalid status is a validation error.
func Move(table types.TaskTable, id int64, status string) (bool, error) {
	return table.Update(id, types.TaskUpdate{Status: &status})
}

// Drag is the interaction state between picking a task up and dropping it.
// The zero value is an idle drag.
type Drag struct {
	taskID int64
	from   types.Status
	active bool
}

// Begin starts dragging task.
func Begin(task *types.Task) Drag {
	if task == nil {
		return Drag{}
	}
	return Drag{taskID: task.ID, from: task.Status, active: true}
}

// Active reports whether a task is being dragged.
func (d Drag) Active() bool {
	return d.active
}

// TaskID returns the dragged task id, or 0 when idle.
func (d Drag) TaskID() int64 {
	return d.taskID
}

// From returns the column the drag started in.
func (d Drag) From() types.Status {
	return d.from
}

// Drop ends the drag over target. The task moves only when target differs
// from the starting column; moved reports whether a write happened. The
// returned Drag is always idle.
func (d Drag) Drop(table types.TaskTable, target types.Status) (Drag, bool, error) {
	if !d.active || target == d.from {
		return Drag{}, false, nil
	}
	if !types.CanTransition(d.from, target) {
		return Drag{}, false, types.Validation(
			fmt.Sprintf("move task %d", d.taskID),
			fmt.Errorf("%w %q", types.ErrInvalidStatus, target))
	}
	moved, err := Move(table, d.taskID, string(target))
	if err != nil {
		return Drag{}, false, err
	}
	return Drag{}, moved, nil
}

// Cancel abandons the drag without writing.
func (d Drag) Cancel() Drag {
	return Drag{}
}
