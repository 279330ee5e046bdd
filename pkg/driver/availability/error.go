// Package availability describes why a depth source cannot be used right now.
package availability

import (
	"errors"
)

var (
	ErrUnimplemented = &Error{Reason: "not implemented"}
	ErrBusy          = &Error{Reason: "device or resource busy"}
	ErrNoDevice      = &Error{Reason: "no such device"}
)

// Error is an availability failure, optionally carrying the error that caused it.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any availability error with the same reason, so that wrapped
// causes still compare equal to the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason == e.Reason
}

// Wrap attaches cause to one of the sentinel errors.
func Wrap(sentinel *Error, cause error) error {
	return &Error{Reason: sentinel.Reason, Err: cause}
}

// IsError reports whether err, or any error it wraps, is an availability error.
func IsError(err error) bool {
	var target *Error
	return errors.As(err, &target)
}
