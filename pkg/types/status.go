package types

import (
	"fmt"
	"strings"
)

// Status is the column a task sits in. Transitions between statuses are
// unrestricted; only the target value is validated.
type Status string

// Task statuses in board order.
const (
	StatusToDo       Status = "ToDo"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// statusLabels maps each status to its column header.
var statusLabels = map[Status]string{
	StatusToDo:       "To Do",
	StatusInProgress: "In Progress",
	StatusDone:       "Done",
}

// Statuses returns the three statuses in board order.
func Statuses() []Status {
	return []Status{StatusToDo, StatusInProgress, StatusDone}
}

// Label returns the column header for s, or the raw value if s is not valid.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the three statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts a canonical status value or its column label,
// ignoring case and surrounding whitespace. Anything else is a validation
// error wrapping ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	v := strings.TrimSpace(s)
	for _, st := range Statuses() {
		if strings.EqualFold(v, string(st)) || strings.EqualFold(v, st.Label()) {
			return st, nil
		}
	}
	return "", Validation("parse status", fmt.Errorf("%w %q (valid: %s)", ErrInvalidStatus, s, validStatusList()))
}

// NormalizeCreateStatus parses s and falls back to StatusToDo when it is not
// recognised. Creation coerces; updates reject.
func NormalizeCreateStatus(s string) Status {
	st, err := ParseStatus(s)
	if err != nil {
		return StatusToDo
	}
	return st
}

// CanTransition reports whether a task may move from one status to another.
// Every pair of valid statuses is allowed, including moving back from Done.
func CanTransition(from, to Status) bool {
	return from.Valid() && to.Valid()
}

func validStatusList() string {
	names := make([]string, 0, len(statusLabels))
	for _, st := range Statuses() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
