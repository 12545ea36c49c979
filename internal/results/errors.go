package results

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound is returned when a results directory or file does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrMalformedFilename is returned when a result file carries the sweep marker
	// without a following positive integer.
	ErrMalformedFilename = errors.New("malformed filename")
	// ErrMalformedLogLine is returned when a matched line has no parseable value.
	ErrMalformedLogLine = errors.New("malformed log line")
)

// ParseError ties one of the sentinel kinds above to the offending input.
type ParseError struct {
	Kind  error
	Path  string
	Line  int // 1-based, 0 when the error concerns the file name
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(":%d", e.Line)
	}
	if e.Token != "" {
		msg += fmt.Sprintf(" (token %q)", e.Token)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFound(path string, err error) error {
	return &ParseError{Kind: ErrInputNotFound, Path: path, Err: err}
}
