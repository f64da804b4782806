package sim

import (
	"errors"
	"fmt"
)

// ErrorKind tags a stage failure so callers dispatch on structure rather
// than on message substrings.
type ErrorKind string

const (
	// ErrMissingCredential: no usable API credential; detected before any
	// network attempt.
	ErrMissingCredential ErrorKind = "missing_credential"
	// ErrNetworkFailure: the outbound call itself failed.
	ErrNetworkFailure ErrorKind = "network_failure"
	// ErrDecodeFailure: the response text did not yield a valid record.
	ErrDecodeFailure ErrorKind = "decode_failure"
)

// StageError is the single error type surfaced by stage callers.
type StageError struct {
	Kind   ErrorKind
	Stage  string
	Detail string
	Err    error
}

func (e *StageError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Kind)
}

func (e *StageError) Unwrap() error { return e.Err }

// Kind extracts the ErrorKind from err, or "" if err carries no
// StageError in its chain.
func Kind(err error) ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
