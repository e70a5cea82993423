package core

import (
	"errors"
	"fmt"
	"io/fs"
)

// kindError is a sentinel that also matches a standard library sentinel, so
// callers can test either errors.Is(err, ErrNotFound) or
// errors.Is(err, fs.ErrNotExist).
type kindError struct {
	msg string
	std error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool {
	return e.std != nil && target == e.std
}

// --- Error taxonomy ---

var (
	// ErrParseFailure is matched by every *ParseError.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidPathKind: a directory path was given where a file path is
	// required, or the other way round.
	ErrInvalidPathKind = &kindError{msg: "invalid path kind", std: fs.ErrInvalid}

	// ErrParentNotFound: the parent directory of the target does not exist.
	ErrParentNotFound = &kindError{msg: "parent directory not found", std: fs.ErrNotExist}

	// ErrNotFound: the target file or directory does not exist.
	ErrNotFound = &kindError{msg: "not found", std: fs.ErrNotExist}

	// ErrInvalidOperation covers requests that can never succeed, like deleting the root.
	ErrInvalidOperation = &kindError{msg: "invalid operation", std: fs.ErrInvalid}

	// ErrOutsideRoot is returned by the physical backend for host paths
	// that are not below its configured root.
	ErrOutsideRoot = &kindError{msg: "path outside filesystem root", std: fs.ErrPermission}

	// ErrInvalidSeek: a seek would move the cursor before the start of the stream.
	ErrInvalidSeek = &kindError{msg: "invalid seek: negative position", std: fs.ErrInvalid}
)

// ParseError reports a path string that could not be parsed.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("could not parse input %q", e.Input)
	}
	return fmt.Sprintf("could not parse input %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParseFailure
}

// NewPathError wraps err with the operation and path it happened on.
func NewPathError(op, path string, err error) error {
	return &fs.PathError{Op: op, Path: path, Err: err}
}
