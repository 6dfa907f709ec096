package store

import (
	"errors"
	"fmt"
)

// InitError reports that the database could not be opened or its schema
// could not be created. It is fatal at startup.
type InitError struct {
	// Path is the database path passed to Open.
	Path string

	// Stage names the step that failed: "open", "connect", "pragmas", "schema".
	Stage string

	Err error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage init (%s) %s: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("storage init (%s): %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// WriteError reports that an insert or delete statement failed.
type WriteError struct {
	// Op is the store operation, e.g. "insert booking".
	Op string

	Err error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsInitError returns true if err is or wraps an *InitError.
func IsInitError(err error) bool {
	var ie *InitError
	return errors.As(err, &ie)
}

// IsWriteError returns true if err is or wraps a *WriteError.
func IsWriteError(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}
