package types

import (
	"errors"
	"strings"
)

// Kind classifies an Error so callers can branch without inspecting messages.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks bad input. It always blocks the write.
	KindValidation
	// KindNotFound marks an operation that targeted a nonexistent task.
	KindNotFound
	// KindStorage marks connection, I/O, or constraint failures.
	KindStorage
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindStorage:
		return "storage failure"
	default:
		return "unknown"
	}
}

// Error is the tagged error returned by the lifecycle rules and the storage
// backend. Op names the failing operation (e.g. "create task").
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. A target with
// KindUnknown matches any *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == KindUnknown || t.Kind == e.Kind
}

// Kind targets for errors.Is.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrStorage    = &Error{Kind: KindStorage}
)

// Causes wrapped by validation errors.
var (
	ErrEmptyTitle    = errors.New("task title cannot be empty")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidID     = errors.New("invalid task ID")
)

// Board lifecycle errors.
var (
	ErrBoardDetached   = errors.New("board is detached")
	ErrAlreadyAttached = errors.New("board is already attached")
)

// Validation wraps err as a validation failure of op.
func Validation(op string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

// NotFound wraps err as a not-found outcome of op.
func NotFound(op string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

// Storage wraps err as a storage failure of op.
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// IsValidation reports whether err is, or wraps, a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is, or wraps, a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsStorage reports whether err is, or wraps, a storage failure.
func IsStorage(err error) bool { return errors.Is(err, ErrStorage) }
