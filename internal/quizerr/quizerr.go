// Package quizerr defines the error kinds surfaced to the user.
package quizerr

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrInput reports a missing or unsupported input (upload, flag value).
	ErrInput = errors.New("input error")
	// ErrUpstream reports a failed generation or form-service call.
	ErrUpstream = errors.New("upstream error")
	// ErrParse reports malformed structured data returned by the model.
	ErrParse = errors.New("parse error")
	// ErrEmptyResult reports that there is nothing to export yet.
	ErrEmptyResult = errors.New("no responses yet")
)

// Error attaches an error kind and operation name to an underlying error.
type Error struct {
	Kind error
	Op   string
	Err  error
}

// Error renders "op: kind: cause".
func (err *Error) Error() string {
	if err == nil {
		return ""
	}
	msg := err.Kind.Error()
	if err.Op != "" {
		msg = err.Op + ": " + msg
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (err *Error) Unwrap() []error {
	if err == nil {
		return nil
	}
	if err.Err == nil {
		return []error{err.Kind}
	}
	return []error{err.Kind, err.Err}
}

// Input wraps err as an ErrInput failure.
func Input(op string, err error) error {
	return &Error{Kind: ErrInput, Op: op, Err: err}
}

// Inputf builds an ErrInput failure from a message.
func Inputf(op, format string, args ...any) error {
	return &Error{Kind: ErrInput, Op: op, Err: fmt.Errorf(format, args...)}
}

// Upstream wraps err as an ErrUpstream failure.
func Upstream(op string, err error) error {
	return &Error{Kind: ErrUpstream, Op: op, Err: err}
}

// Parse wraps err as an ErrParse failure.
func Parse(op string, err error) error {
	return &Error{Kind: ErrParse, Op: op, Err: err}
}

// EmptyResult builds an ErrEmptyResult failure.
func EmptyResult(op string) error {
	return &Error{Kind: ErrEmptyResult, Op: op}
}

// KindOf returns the first known kind matched by err, or nil.
func KindOf(err error) error {
	for _, kind := range []error{ErrInput, ErrUpstream, ErrParse, ErrEmptyResult} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
