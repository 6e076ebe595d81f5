// Package toolver gates the pipeline on the configure tool's version.
package toolver

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/cmstack/bake/internal/execx"
)

var versionRE = regexp.MustCompile(`[0-9]+(?:\.[0-9]+){1,2}`)

// Parse extracts the first dotted version number from tool output,
// e.g. "cmake version 3.28.3" yields "3.28.3". Returns "" when no
// version is found.
func Parse(out string) string {
	line, _, _ := strings.Cut(out, "\n")
	return versionRE.FindString(line)
}

// Check probes "<bin> --version" and reports an error when the
// reported version is older than min. Probe failures are surfaced as
// plain errors, not as the child's exit status: an unusable configure
// tool is an environment problem, not a build failure.
func Check(ctx context.Context, r execx.Runner, bin, min string) error {
	out, err := r.Output(ctx, execx.Command{Program: bin, Args: []string{"--version"}})
	if err != nil {
		return fmt.Errorf("toolver: probe %s: %v", bin, err)
	}
	v := Parse(out)
	if v == "" {
		return fmt.Errorf("toolver: cannot parse %s version from %q", bin, firstLine(out))
	}
	if semver.Compare("v"+v, "v"+min) < 0 {
		return fmt.Errorf("toolver: %s %s is older than required %s", bin, v, min)
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
