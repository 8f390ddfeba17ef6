package types

import (
	"strings"
	"time"
)

// Task is a unit of work on the board.
type Task struct {
	ID          int64     `json:"id"`          // Assigned by storage on creation, immutable.
	Title       string    `json:"title"`       // Trimmed, never empty.
	Description string    `json:"description"` // Trimmed, may be empty.
	Status      Status    `json:"status"`      // One of the Status constants.
	CreatedAt   time.Time `json:"created_at"`  // Set once at creation.
	UpdatedAt   time.Time `json:"updated_at"`  // Refreshed on every successful mutation.
}

// NormalizeTitle trims title and rejects an empty result.
func NormalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", Validation("validate title", ErrEmptyTitle)
	}
	return t, nil
}

// NormalizeDescription trims description. Empty descriptions are allowed.
func NormalizeDescription(description string) string {
	return strings.TrimSpace(description)
}

// TaskUpdate carries the fields of a partial update. A nil field is not
// provided and leaves the stored value unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// IsEmpty reports whether no field is provided.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil
}

// Normalize validates each provided field independently and returns the
// trimmed and parsed values. Unlike creation, an invalid status is rejected.
func (u TaskUpdate) Normalize() (TaskChanges, error) {
	var c TaskChanges
	if u.Title != nil {
		t, err := NormalizeTitle(*u.Title)
		if err != nil {
			return TaskChanges{}, err
		}
		c.Title = &t
	}
	if u.Description != nil {
		d := NormalizeDescription(*u.Description)
		c.Description = &d
	}
	if u.Status != nil {
		st, err := ParseStatus(*u.Status)
		if err != nil {
			return TaskChanges{}, err
		}
		c.Status = &st
	}
	return c, nil
}

// TaskChanges is a validated TaskUpdate ready to be applied.
type TaskChanges struct {
	Title       *string
	Description *string
	Status      *Status
}

// Apply copies the provided fields onto t.
func (c TaskChanges) Apply(t *Task) {
	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Status != nil {
		t.Status = *c.Status
	}
}

// StringPtr returns a pointer to s, for building TaskUpdate literals.
func StringPtr(s string) *string {
	return &s
}
