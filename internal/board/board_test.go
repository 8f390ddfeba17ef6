package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/internal/sqlite"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func setupTable(t *testing.T) types.TaskTable {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	table, err := b.Tasks()
	require.NoError(t, err)
	return table
}

func TestColumns(t *testing.T) {
	tasks := []*types.Task{
		{ID: 1, Status: types.StatusDone},
		{ID: 2, Status: types.StatusToDo},
		{ID: 3, Status: types.StatusInProgress},
		{ID: 4, Status: types.StatusToDo},
		{ID: 5, Status: "Archived"},
	}

	cols := Columns(tasks)
	require.Len(t, cols, 3)

	assert.Equal(t, types.StatusToDo, cols[0].Status)
	assert.Equal(t, "To Do", cols[0].Title())
	assert.Equal(t, []*types.Task{tasks[1], tasks[3], tasks[4]}, cols[0].Tasks)
	assert.Equal(t, []*types.Task{tasks[2]}, cols[1].Tasks)
	assert.Equal(t, []*types.Task{tasks[0]}, cols[2].Tasks)
}

func TestColumns_Empty(t *testing.T) {
	cols := Columns(nil)
	require.Len(t, cols, 3)
	for _, c := range cols {
		assert.NotNil(t, c.Tasks)
		assert.Empty(t, c.Tasks)
	}
}

func TestLoad(t *testing.T) {
	table := setupTable(t)
	_, err := table.Create("Buy milk", "", "ToDo")
	require.NoError(t, err)
	_, err = table.Create("Write report", "urgent", "InProgress")
	require.NoError(t, err)
	_, err = table.Create("Shop for gifts", "", "Done")
	require.NoError(t, err)

	snap, err := Load(table, types.ListQuery{SortBy: "nonsense"})
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Total())
	assert.Equal(t, types.SortCreatedDesc, snap.Query.SortBy)
	assert.Len(t, snap.Column(types.StatusInProgress).Tasks, 1)

	snap, err = Load(table, types.ListQuery{Search: "shop"})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Total())
	assert.Len(t, snap.Column(types.StatusDone).Tasks, 1)
	assert.Empty(t, snap.Column("bogus").Tasks)
}

func TestMove(t *testing.T) {
	table := setupTable(t)
	id, err := table.Create("Task", "", "")
	require.NoError(t, err)

	moved, err := Move(table, id, "Done")
	require.NoError(t, err)
	assert.True(t, moved)

	moved, err = Move(table, id, "To Do")
	require.NoError(t, err)
	assert.True(t, moved)

	_, err = Move(table, id, "Archived")
	assert.True(t, types.IsValidation(err))

	moved, err = Move(table, 999, "Done")
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestDrag(t *testing.T) {
	table := setupTable(t)
	id, err := table.Create("Drag me", "", "ToDo")
	require.NoError(t, err)
	task, _, err := table.Get(id)
	require.NoError(t, err)

	t.Run("idle drag drop is a no-op", func(t *testing.T) {
		var d Drag
		assert.False(t, d.Active())
		next, moved, err := d.Drop(table, types.StatusDone)
		require.NoError(t, err)
		assert.False(t, moved)
		assert.False(t, next.Active())
	})

	t.Run("drop on same column does not write", func(t *testing.T) {
		d := Begin(task)
		assert.True(t, d.Active())
		assert.Equal(t, id, d.TaskID())
		assert.Equal(t, types.StatusToDo, d.From())

		next, moved, err := d.Drop(table, types.StatusToDo)
		require.NoError(t, err)
		assert.False(t, moved)
		assert.False(t, next.Active())

		got, _, err := table.Get(id)
		require.NoError(t, err)
		assert.Equal(t, task.UpdatedAt, got.UpdatedAt)
	})

	t.Run("drop on another column moves the task", func(t *testing.T) {
		next, moved, err := Begin(task).Drop(table, types.StatusInProgress)
		require.NoError(t, err)
		assert.True(t, moved)
		assert.False(t, next.Active())

		got, _, err := table.Get(id)
		require.NoError(t, err)
		assert.Equal(t, types.StatusInProgress, got.Status)
	})

	t.Run("drop on unknown column is rejected", func(t *testing.T) {
		_, moved, err := Begin(task).Drop(table, "Archived")
		assert.False(t, moved)
		assert.True(t, types.IsValidation(err))
	})

	t.Run("task deleted mid-drag", func(t *testing.T) {
		otherID, err := table.Create("Gone", "", "")
		require.NoError(t, err)
		other, _, err := table.Get(otherID)
		require.NoError(t, err)

		d := Begin(other)
		_, err = table.Delete(otherID)
		require.NoError(t, err)

		_, moved, err := d.Drop(table, types.StatusDone)
		require.NoError(t, err)
		assert.False(t, moved)
	})

	t.Run("cancel and nil task", func(t *testing.T) {
		assert.False(t, Begin(task).Cancel().Active())
		assert.False(t, Begin(nil).Active())
	})
}
