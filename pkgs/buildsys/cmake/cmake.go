// Package cmake wraps the cmake/make/ctest configure-compile-test workflow.
package cmake

import (
	"context"
	"runtime"
	"sort"
	"strconv"

	"github.com/cmstack/bake/internal/execx"
	"github.com/cmstack/bake/pkgs/buildsys"
)

// Default tool names; overridable through Tools.
const (
	DefaultConfigureTool = "cmake"
	DefaultCompileTool   = "make"
	DefaultTestTool      = "ctest"
)

type defineValue struct {
	value    string
	typeName string
}

// CMake drives CMake-based builds through an injected runner.
// Every command runs inside the build directory.
type CMake struct {
	runner    execx.Runner
	sourceDir string
	buildDir  string
	generator string
	buildType string
	defines   map[string]defineValue
	jobs      int

	configureBin string
	compileBin   string
	testBin      string
}

var _ buildsys.Toolchain = (*CMake)(nil)

// New returns a ready-to-use CMake.
func New(runner execx.Runner, sourceDir, buildDir string) *CMake {
	return &CMake{
		runner:       runner,
		sourceDir:    sourceDir,
		buildDir:     buildDir,
		defines:      make(map[string]defineValue),
		configureBin: DefaultConfigureTool,
		compileBin:   DefaultCompileTool,
		testBin:      DefaultTestTool,
	}
}

// Generator sets the CMake generator (e.g. "Ninja", "Unix Makefiles").
func (c *CMake) Generator(name string) { c.generator = name }

// BuildType sets CMAKE_BUILD_TYPE (e.g. "Release", "Debug").
func (c *CMake) BuildType(name string) { c.buildType = name }

// Jobs sets the compile parallelism. Zero or negative means one job
// per available processing unit.
func (c *CMake) Jobs(n int) { c.jobs = n }

// Tools overrides the tool names. Empty strings keep the defaults.
func (c *CMake) Tools(configure, compile, test string) {
	if configure != "" {
		c.configureBin = configure
	}
	if compile != "" {
		c.compileBin = compile
	}
	if test != "" {
		c.testBin = test
	}
}

// Define adds a -D<key>:STRING=<value> definition.
func (c *CMake) Define(key, value string) {
	c.defines[key] = defineValue{value: value, typeName: "STRING"}
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) {
	v := "OFF"
	if value {
		v = "ON"
	}
	c.defines[key] = defineValue{value: v, typeName: "BOOL"}
}

// Configure runs "<cmake> [options...] <source>" inside the build
// directory. Extra args are appended before the source path.
func (c *CMake) Configure(ctx context.Context, args ...string) error {
	if c.buildType != "" {
		c.Define("CMAKE_BUILD_TYPE", c.buildType)
	}
	cmakeArgs := []string{}
	if c.generator != "" {
		cmakeArgs = append(cmakeArgs, "-G", c.generator)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)
	cmakeArgs = append(cmakeArgs, c.sourceDir)
	return c.run(ctx, c.configureBin, cmakeArgs)
}

// Compile runs "<make> -j<jobs>" with optional extra arguments.
func (c *CMake) Compile(ctx context.Context, args ...string) error {
	jobs := c.jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return c.run(ctx, c.compileBin, append([]string{"-j" + strconv.Itoa(jobs)}, args...))
}

// Test runs "<ctest> --output-on-failure" with optional extra arguments.
func (c *CMake) Test(ctx context.Context, args ...string) error {
	return c.run(ctx, c.testBin, append([]string{"--output-on-failure"}, args...))
}

func (c *CMake) run(ctx context.Context, bin string, args []string) error {
	return c.runner.Run(ctx, execx.Command{Program: bin, Args: args, Dir: c.buildDir})
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		d := c.defines[k]
		args = append(args, "-D"+k+":"+d.typeName+"="+d.value)
	}
	return args
}
