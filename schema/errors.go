package schema

import (
	"errors"
	"fmt"
)

// Input error taxonomy. Every kind except ErrEmptyResult is fatal.
var (
	ErrInputAbsent    = errors.New("no input received")
	ErrInputMalformed = errors.New("input does not look like JSON")
	ErrParse          = errors.New("cannot parse JSON input")
	ErrSchemaMismatch = errors.New("unrecognized JSON format")
	ErrEmptyResult    = errors.New("no data to chart")
)

// InputError wraps one of the taxonomy sentinels with user-facing context.
type InputError struct {
	Kind    error  // One of the Err* sentinels above
	Detail  string // Underlying message, if any
	Hint    string // Suggestion for the user
	Excerpt string // Beginning of the received input
}

// Error implements the error interface.
func (e *InputError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

// Unwrap exposes the sentinel so errors.Is works on the taxonomy.
func (e *InputError) Unwrap() error {
	return e.Kind
}

// IsFatal reports whether err should terminate the process with a non-zero exit code.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrEmptyResult)
}
