package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "Buy milk", want: "Buy milk"},
		{name: "trimmed", input: "  Buy milk\t\n", want: "Buy milk"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: " \t\n ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTitle(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				assert.ErrorIs(t, err, ErrEmptyTitle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "", NormalizeDescription("   "))
	assert.Equal(t, "urgent", NormalizeDescription(" urgent "))
}

func TestTaskUpdateNormalize(t *testing.T) {
	t.Run("empty update", func(t *testing.T) {
		u := TaskUpdate{}
		assert.True(t, u.IsEmpty())
		c, err := u.Normalize()
		require.NoError(t, err)
		assert.Nil(t, c.Title)
		assert.Nil(t, c.Description)
		assert.Nil(t, c.Status)
	})

	t.Run("fields trimmed and parsed", func(t *testing.T) {
		u := TaskUpdate{
			Title:       StringPtr("  Write report "),
			Description: StringPtr(" urgent "),
			Status:      StringPtr("In Progress"),
		}
		assert.False(t, u.IsEmpty())
		c, err := u.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "Write report", *c.Title)
		assert.Equal(t, "urgent", *c.Description)
		assert.Equal(t, StatusInProgress, *c.Status)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		_, err := TaskUpdate{Title: StringPtr("   ")}.Normalize()
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := TaskUpdate{Status: StringPtr("bogus")}.Normalize()
		assert.True(t, IsValidation(err))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("empty description allowed", func(t *testing.T) {
		c, err := TaskUpdate{Description: StringPtr("")}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "", *c.Description)
	})
}

func TestTaskChangesApply(t *testing.T) {
	task := &Task{ID: 7, Title: "old", Description: "keep", Status: StatusToDo}
	st := StatusDone
	TaskChanges{Title: StringPtr("new"), Status: &st}.Apply(task)

	assert.Equal(t, "new", task.Title)
	assert.Equal(t, "keep", task.Description)
	assert.Equal(t, StatusDone, task.Status)
	assert.Equal(t, int64(7), task.ID)
}
