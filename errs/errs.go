// Package errs holds the failure kinds a conversion can end with. None of
// them are retried; each one is terminal for the run.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrInputNotFound = errors.New("input file not found")

// ParseError means the event stream could not be decoded. No artifact is
// written after one.
type ParseError struct {
	Path  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %v", e.Path, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IOError means the artifact could not be (fully) written. Whatever was
// already written stays on disk.
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("could not write %s: %v", e.Path, e.Cause)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

func NewParseError(path string, cause error) error {
	return errors.WithStack(&ParseError{Path: path, Cause: cause})
}

func NewIOError(path string, cause error) error {
	return errors.WithStack(&IOError{Path: path, Cause: cause})
}

func InputNotFound(path string) error {
	return errors.Wrap(ErrInputNotFound, path)
}

func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func IsIOError(err error) bool {
	var ioe *IOError
	return errors.As(err, &ioe)
}

func IsInputNotFound(err error) bool {
	return errors.Is(err, ErrInputNotFound)
}
