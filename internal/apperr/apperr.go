// Package apperr classifies service failures so callers can tell a bad
// request from a missing record or an unreachable database.
package apperr

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("unavailable")
	ErrInternal     = errors.New("internal")
)

// Error carries the failed operation, its kind and the underlying cause.
// Both Kind and Err match with errors.Is.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

// Wrap classifies err and prefixes it with op. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return &Error{Op: op, Kind: ae.Kind, Err: err}
	}
	return &Error{Op: op, Kind: Classify(err), Err: err}
}

func Invalid(op, message string) error {
	return &Error{Op: op, Kind: ErrInvalidInput, Err: errors.New(message)}
}

func NotFound(resource, id string) error {
	return &Error{Op: resource + " " + id, Kind: ErrNotFound, Err: ErrNotFound}
}

// Classify maps driver errors onto a kind: timeouts and network failures are
// transient, everything else is internal.
func Classify(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrUnavailable
	case mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return ErrUnavailable
	case errors.Is(err, mongo.ErrClientDisconnected):
		return ErrUnavailable
	}
	return ErrInternal
}

func Is(err, kind error) bool { return errors.Is(err, kind) }
