package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	NotFound
	InvalidTransition
	ConstraintViolation
	ConcurrencyConflict
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case InvalidTransition:
		return "invalid transition"
	case ConstraintViolation:
		return "constraint violation"
	case ConcurrencyConflict:
		return "concurrency conflict"
	default:
		return "internal error"
	}
}

// Error carries the failing operation and a user-facing message.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func NewNotFound(op, msg string) error            { return newError(NotFound, op, msg) }
func NewInvalidTransition(op, msg string) error   { return newError(InvalidTransition, op, msg) }
func NewConstraintViolation(op, msg string) error { return newError(ConstraintViolation, op, msg) }
func NewConcurrencyConflict(op, msg string) error { return newError(ConcurrencyConflict, op, msg) }

// Wrap marks err as an internal failure of op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: Internal, Op: op, Err: err}
}

// KindOf reports the kind of err; unknown errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the text safe to show to a client.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == Internal {
			return "internal error"
		}
		if e.Msg != "" {
			return e.Msg
		}
	}
	return "internal error"
}
