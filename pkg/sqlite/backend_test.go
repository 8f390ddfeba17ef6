package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func TestNewBackend(t *testing.T) {
	board := NewBackend()
	require.NoError(t, board.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	defer board.Detach()

	tasks, err := board.Tasks()
	require.NoError(t, err)

	id, err := tasks.Create("Buy milk", "", "")
	require.NoError(t, err)
	task, found, err := tasks.Get(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, types.StatusToDo, task.Status)
}
