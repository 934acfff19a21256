package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned to the shell.
const (
	// ExitSuccess indicates the command completed without errors.
	ExitSuccess = 0

	// ExitUser indicates a user-correctable failure, such as invalid
	// frontmatter, a missing file, or a bad flag combination.
	ExitUser = 1

	// ExitSystem indicates an environment or internal failure the user
	// cannot fix by editing their input.
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoInput indicates no input files were given or found.
	ErrNoInput = errors.New("no input files")

	// ErrLintFailed indicates at least one file failed validation.
	ErrLintFailed = errors.New("validation failed")

	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound indicates a requested resource does not exist.
	ErrNotFound = errors.New("not found")
)

// ExitError pairs an error with the process exit code it should produce,
// plus an optional suggestion shown to the user.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given underlying error and code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewExitErrorWithSuggestion creates an ExitError with a suggestion for the user.
func NewExitErrorWithSuggestion(err error, code int, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: code, Suggestion: suggestion}
}

// NewUserError creates an ExitError with ExitUser and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return NewExitErrorWithSuggestion(err, ExitUser, suggestion)
}

// NewSystemError creates an ExitError with ExitSystem and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return NewExitErrorWithSuggestion(err, ExitSystem, suggestion)
}

// NewConfigError creates an ExitError for configuration failures.
func NewConfigError(err error) *ExitError {
	return NewExitErrorWithSuggestion(
		fmt.Errorf("%w: %w", ErrInvalidConfig, err),
		ExitUser,
		"Verify the config file is valid YAML",
	)
}
