package config

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Validation sentinel errors.
var (
	// ErrNegativeJobs indicates a negative worker count.
	ErrNegativeJobs = errors.New("jobs must not be negative")

	// ErrBadExtension indicates an extension without a leading dot.
	ErrBadExtension = errors.New("extension must start with a dot")
)

// ExtensionError reports which extension failed validation.
type ExtensionError struct {
	Ext string
	Err error
}

// Error implements the error interface.
func (e *ExtensionError) Error() string {
	return fmt.Sprintf("extension %q: %v", e.Ext, e.Err)
}

// Unwrap returns the underlying error for errors.Is support.
func (e *ExtensionError) Unwrap() error {
	return e.Err
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return errors.Wrapf(ErrNegativeJobs, "jobs = %d", c.Jobs)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return &ExtensionError{Ext: ext, Err: ErrBadExtension}
		}
	}
	return nil
}
