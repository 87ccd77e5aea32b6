package model

import (
	"errors"
	"strings"
)

// ErrorKind classifies pipeline failures. A kind is itself an error so callers
// can write errors.Is(err, model.ErrMalformed).
type ErrorKind string

func (k ErrorKind) Error() string { return string(k) }

const (
	ErrMalformed            ErrorKind = "line malformed"
	ErrInsufficientData     ErrorKind = "insufficient data"
	ErrInvalidRequest       ErrorKind = "invalid request"
	ErrUnsupportedAlgorithm ErrorKind = "unsupported algorithm"
	ErrFileUnavailable      ErrorKind = "file unavailable"
	ErrIOFailure            ErrorKind = "io failure"
	ErrDirectoryConflict    ErrorKind = "directory conflict"
)

// Error is a classified failure with enough context to act on.
type Error struct {
	Kind    ErrorKind
	Path    string
	Line    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Path != "" {
		b.WriteString(" - Path [")
		b.WriteString(e.Path)
		b.WriteString("]")
	}
	if e.Kind == ErrMalformed {
		b.WriteString(" - Line [")
		b.WriteString(e.Line)
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the error's kind. An unsupported algorithm is also an invalid request.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	if !ok {
		return false
	}
	if k == e.Kind {
		return true
	}
	return k == ErrInvalidRequest && e.Kind == ErrUnsupportedAlgorithm
}

// KindOf returns the kind of the first classified error in err's chain, or "" when none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return ""
}
