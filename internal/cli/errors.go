package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/innkeep/internal/collection"
	"github.com/roach88/innkeep/internal/store"
)

// Error codes carried in CLIError.Code.
const (
	CodeInvalidInput = "E001" // malformed field or sort key
	CodeNoSelection  = "E002" // delete without a target
	CodeAuth         = "E003" // credential check failed
	CodeStorageInit  = "E004" // database cannot be opened
	CodeStorageWrite = "E005" // insert or delete failed
	CodeCommand      = "E006" // anything else
)

// ErrInvalidCredentials is returned when the login gate rejects the user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// InvalidInputError reports a caller-supplied field that is not a valid
// value, most often a cost or id that is not an integer. It is raised before
// the record store is called.
type InvalidInputError struct {
	Field string
	Value string
	Msg   string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Msg)
}

// NoSelectionError reports a deletion requested without naming the bookings
// to delete.
type NoSelectionError struct{}

// Error implements the error interface.
func (e *NoSelectionError) Error() string {
	return "no booking selected: pass the guest name to delete"
}

// IsInvalidInput returns true if err is or wraps an *InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

// IsNoSelection returns true if err is or wraps a *NoSelectionError.
func IsNoSelection(err error) bool {
	var ne *NoSelectionError
	return errors.As(err, &ne)
}

// errorCode classifies err for CLIError.Code.
func errorCode(err error) string {
	switch {
	case IsInvalidInput(err), errors.Is(err, collection.ErrUnknownSortKey):
		return CodeInvalidInput
	case IsNoSelection(err):
		return CodeNoSelection
	case errors.Is(err, ErrInvalidCredentials):
		return CodeAuth
	case store.IsInitError(err):
		return CodeStorageInit
	case store.IsWriteError(err):
		return CodeStorageWrite
	default:
		return CodeCommand
	}
}

// exitCode maps err to a process exit code. An *ExitError carries its own
// code; any other error comes from cobra itself (unknown command, wrong
// argument count) and is a command error.
func exitCode(err error) int {
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return ExitCommandError
	}
	return GetExitCode(err)
}
