// Package apperr defines the error kinds surfaced at the histscope command
// boundary. Every failure a caller can see is one of these, serialized as a
// tagged value rather than aborting the process.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind string

const (
	// KindValidation is bad caller input: out-of-range page size, invalid
	// top-N, a path that is not a SQLite file.
	KindValidation Kind = "validation"
	// KindConnection is an open/reset failure or a storage engine failure.
	KindConnection Kind = "connection"
	// KindInternal is an unexpected I/O or serialization failure.
	KindInternal Kind = "internal"
)

// Error is a classified error with a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// MarshalJSON encodes the error as {"type": kind, "data": message}.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type Kind   `json:"type"`
		Data string `json:"data"`
	}{Type: e.Kind, Data: e.Error()})
}

// Invalidf returns a validation error.
func Invalidf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Connection wraps err as a connection error.
func Connection(err error, msg string) *Error {
	return &Error{Kind: KindConnection, Msg: msg, Err: err}
}

// Internal wraps err as an internal error.
func Internal(err error, msg string) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the kind of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Ensure converts err into an *Error, wrapping unclassified errors with
// fallback. A nil err stays nil.
func Ensure(err error, fallback Kind, msg string) error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return &Error{Kind: fallback, Msg: msg, Err: err}
}
