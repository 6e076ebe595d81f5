// Package execx provides the subprocess capability used to invoke
// external build tools, so the pipeline can run against a fake in tests.
package execx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Command describes one external tool invocation.
type Command struct {
	Program string
	Args    []string
	Dir     string // working directory; empty means inherit
}

// Runner executes external commands.
type Runner interface {
	// Run executes the command with stdout/stderr passed through
	// unmodified.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its captured stdout.
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExitError reports a tool that ran and exited non-zero.
type ExitError struct {
	Program string
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Program, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ToolRunner is the production Runner backed by os/exec.
type ToolRunner struct{}

var _ Runner = ToolRunner{}

func (ToolRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return wrapExit(c.Program, cmd.Run())
}

func (ToolRunner) Output(ctx context.Context, c Command) (string, error) {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	cmd.Dir = c.Dir
	out, err := cmd.Output()
	return string(out), wrapExit(c.Program, err)
}

// wrapExit converts a non-zero exit into an *ExitError so callers can
// recover the child's status; other errors pass through unchanged.
func wrapExit(program string, err error) error {
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() > 0 {
		return &ExitError{Program: program, Code: ee.ExitCode(), Err: ee}
	}
	return err
}
