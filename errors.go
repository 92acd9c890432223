package proj2gpt

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrInvalidConfig is returned when the configuration is rejected
	// before a build starts.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrBadPattern is returned for a malformed glob pattern.
	ErrBadPattern = errors.New("malformed glob pattern")

	// ErrNoBuilds is returned when an operation needs a prior build and
	// the destination directory holds none.
	ErrNoBuilds = errors.New("no builds found")
)

// ConfigError collects every configuration problem found during validation,
// so a misconfigured project reports all of them at once.
type ConfigError struct {
	Errors []error
}

// Error implements the error interface.
func (ce *ConfigError) Error() string {
	if len(ce.Errors) == 1 {
		return fmt.Sprintf("%v: %v", ErrInvalidConfig, ce.Errors[0])
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "%v (%d problems):\n", ErrInvalidConfig, len(ce.Errors))
	for i, err := range ce.Errors {
		fmt.Fprintf(&buf, "  %d. %v\n", i+1, err)
	}
	return buf.String()
}

// Unwrap returns the underlying errors for use with errors.Is and errors.As.
// This implements the multi-error unwrap interface introduced in Go 1.20.
func (ce *ConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, ce.Errors...)
}

// newConfigError creates a ConfigError from a slice of errors.
// Returns nil if the slice is empty.
func newConfigError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &ConfigError{Errors: errs}
}

// BuildError is a fatal build failure. It carries the identifier of the
// build that failed; prior builds are left untouched.
type BuildError struct {
	ID  string
	Err error
}

// Error implements the error interface.
func (be *BuildError) Error() string {
	return fmt.Sprintf("build %s: %v", be.ID, be.Err)
}

// Unwrap returns the underlying error.
func (be *BuildError) Unwrap() error {
	return be.Err
}
