// Package build orchestrates the configure/compile/test pipeline of a
// CMake project and the clean action.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"

	"github.com/cmstack/bake/internal/config"
	"github.com/cmstack/bake/internal/execx"
	"github.com/cmstack/bake/internal/toolver"
	"github.com/cmstack/bake/internal/workdir"
	"github.com/cmstack/bake/pkgs/buildsys"
	"github.com/cmstack/bake/pkgs/buildsys/cmake"
)

// Options configures a Builder.
type Options struct {
	// Root is the project root. Empty means the current directory.
	Root string

	// Config supplies the project configuration; nil means defaults.
	Config *config.Config

	// Runner executes external tools; nil means the real one.
	Runner execx.Runner
}

// Builder runs one mode against one project. A Builder owns its build
// directory for the duration of a Run; concurrent invocations against
// the same project are unsupported.
type Builder struct {
	root   string
	cfg    *config.Config
	runner execx.Runner
}

// NewBuilder returns a Builder with opts resolved against defaults.
func NewBuilder(opts Options) (*Builder, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	runner := opts.Runner
	if runner == nil {
		runner = execx.ToolRunner{}
	}
	return &Builder{root: root, cfg: cfg, runner: runner}, nil
}

// Run executes the selected mode. Clean short-circuits: no external
// tool runs after it. Every other mode runs the pipeline, aborting at
// the first failing step with that step's error.
func (b *Builder) Run(ctx context.Context, mode Mode) error {
	if mode == Clean {
		return b.Clean()
	}
	if min := b.cfg.MinToolVersion; min != "" {
		if err := toolver.Check(ctx, b.runner, b.cfg.Tools.Configure, min); err != nil {
			return err
		}
	}
	return b.pipeline(ctx, mode)
}

func (b *Builder) pipeline(ctx context.Context, mode Mode) (err error) {
	buildDir := b.buildDir()
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return fmt.Errorf("create build dir: %w", err)
	}
	restore, err := workdir.Enter(buildDir)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	tc := b.toolchain(mode, buildDir)

	log.Debugf("configure %s (mode %s)", b.root, mode)
	if err := tc.Configure(ctx); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	log.Debugf("compile in %s", buildDir)
	if err := tc.Compile(ctx); err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	if mode == Test {
		log.Debugf("test in %s", buildDir)
		if err := tc.Test(ctx); err != nil {
			return fmt.Errorf("test: %w", err)
		}
	}
	return nil
}

func (b *Builder) toolchain(mode Mode, buildDir string) buildsys.Toolchain {
	c := cmake.New(b.runner, b.root, buildDir)
	c.Tools(b.cfg.Tools.Configure, b.cfg.Tools.Compile, b.cfg.Tools.Test)
	c.Jobs(b.cfg.Jobs)
	if b.cfg.Generator != "" {
		c.Generator(b.cfg.Generator)
	}
	if mode == Debug {
		c.BuildType(b.cfg.DebugBuildType)
	}
	for k, v := range b.cfg.Defines {
		c.Define(k, v)
	}
	return c
}

func (b *Builder) buildDir() string {
	if filepath.IsAbs(b.cfg.BuildDir) {
		return b.cfg.BuildDir
	}
	return filepath.Join(b.root, b.cfg.BuildDir)
}
