package errors

import crdb "github.com/cockroachdb/errors"

// The helpers below delegate to cockroachdb/errors so callers get stack
// traces and error chains from a single import.

// New creates an error with a stack trace.
func New(msg string) error {
	return crdb.New(msg)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...any) error {
	return crdb.Newf(format, args...)
}

// Wrap annotates err with a message. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	return crdb.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdb.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return crdb.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target any) bool {
	return crdb.As(err, target)
}
