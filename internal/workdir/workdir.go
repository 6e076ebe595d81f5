// Package workdir provides scoped working-directory changes.
package workdir

import (
	"fmt"
	"os"
)

// Enter changes the process working directory to dir and returns a
// restore function that changes back to the directory that was current
// when Enter was called. Callers defer restore so the origin directory
// is re-entered on every exit path.
func Enter(dir string) (restore func() error, err error) {
	origin, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("workdir: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("workdir: enter %s: %w", dir, err)
	}
	return func() error {
		if err := os.Chdir(origin); err != nil {
			return fmt.Errorf("workdir: restore %s: %w", origin, err)
		}
		return nil
	}, nil
}
