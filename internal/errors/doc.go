// Package errors provides error types and exit codes for the CLI.
//
// Commands wrap failures in an [ExitError] so the entry point can map
// them to process exit codes: [ExitUser] for problems the user can fix
// by editing their input, [ExitSystem] for environment or internal
// failures.
//
// # Usage
//
//	if err := run(); err != nil {
//	    return errors.NewUserError(err, "Check the file path")
//	}
//
// Sentinel errors such as [ErrNoInput] and [ErrLintFailed] support
// errors.Is checks across package boundaries:
//
//	if errors.Is(err, errors.ErrLintFailed) {
//	    // at least one file failed validation
//	}
package errors
