// Package exitcode defines the exit statuses of the bake CLI.
// The constants let wrapper scripts check statuses symbolically.
package exitcode

import (
	"errors"

	"github.com/cmstack/bake/internal/execx"
)

const (
	// Success indicates every applicable step completed, including a
	// successful clean.
	Success = 0

	// Failure indicates a usage, configuration, or directory error.
	Failure = 1
)

// FromError maps an error to the process exit status. Failures of an
// external tool propagate the child's own exit code unchanged; every
// other error maps to Failure.
func FromError(err error) int {
	if err == nil {
		return Success
	}
	var ee *execx.ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return Failure
}
