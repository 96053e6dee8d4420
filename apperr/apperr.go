// Package apperr carries the domain error kinds the services raise and the
// controllers translate to HTTP statuses.
package apperr

import "errors"

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalid
	KindConflict
	KindUnsupportedState
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Kind() Kind    { return e.kind }

func NotFound(msg string) error { return &Error{kind: KindNotFound, msg: msg} }
func Invalid(msg string) error  { return &Error{kind: KindInvalid, msg: msg} }
func Conflict(msg string) error { return &Error{kind: KindConflict, msg: msg} }

// UnsupportedState marks an unrecognized booking-list filter keyword. The
// message shape is part of the API contract.
func UnsupportedState(state string) error {
	return &Error{kind: KindUnsupportedState, msg: "Unknown state: " + state}
}

// KindOf extracts the kind, or 0 for errors that did not come from here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return 0
}
