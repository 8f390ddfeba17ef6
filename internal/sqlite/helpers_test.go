package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// stepClock returns a fixed start time advanced by step on every call.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newStepClock() *stepClock {
	return &stepClock{
		t:    time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
		step: time.Second,
	}
}

// setupBackend creates an attached Backend in a temp dir with a stepping
// clock and returns it with its task table. Detach runs on cleanup.
func setupBackend(t *testing.T) (*Backend, types.TaskTable, *stepClock) {
	t.Helper()
	b := NewBackend()
	clk := newStepClock()
	b.now = clk.now
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { b.Detach() })

	table, err := b.Tasks()
	require.NoError(t, err)
	return b, table, clk
}

func ids(tasks []*types.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
