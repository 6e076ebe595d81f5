package build

import (
	"context"

	"github.com/cmstack/bake/internal/execx"
)

// fakeRunner implements execx.Runner for testing. It records every
// command instead of spawning processes.
type fakeRunner struct {
	calls  []execx.Command
	failOn map[string]error // program name -> error to return
	output string           // returned by Output
}

func (r *fakeRunner) Run(ctx context.Context, c execx.Command) error {
	r.calls = append(r.calls, c)
	if err, ok := r.failOn[c.Program]; ok {
		return err
	}
	return nil
}

func (r *fakeRunner) Output(ctx context.Context, c execx.Command) (string, error) {
	r.calls = append(r.calls, c)
	if err, ok := r.failOn[c.Program]; ok {
		return "", err
	}
	return r.output, nil
}

func (r *fakeRunner) programs() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Program
	}
	return out
}
