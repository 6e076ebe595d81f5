// Package config loads the project configuration for bake.
//
// Configuration layers, later winning: built-in defaults, the optional
// .bake.yml file at the project root, then BAKE_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up at the project root.
const DefaultFile = ".bake.yml"

// Tools names the external programs invoked by the pipeline.
type Tools struct {
	Configure string `yaml:"configure"`
	Compile   string `yaml:"compile"`
	Test      string `yaml:"test"`
}

// Config holds the resolved project configuration.
type Config struct {
	// BuildDir is the directory configure and compile run in,
	// relative to the project root unless absolute.
	BuildDir string `yaml:"build_dir"`

	// Artifacts are the paths removed by clean.
	Artifacts []string `yaml:"artifacts"`

	// Generator selects the CMake generator; empty keeps the tool's
	// default.
	Generator string `yaml:"generator"`

	// DebugBuildType is the build variant selected in debug mode.
	DebugBuildType string `yaml:"debug_build_type"`

	// Defines are extra cache definitions passed to configure.
	Defines map[string]string `yaml:"defines"`

	// Jobs is the compile parallelism; 0 means one job per available
	// processing unit.
	Jobs int `yaml:"jobs"`

	Tools Tools `yaml:"tools"`

	// MinToolVersion, when set, gates the pipeline on the configure
	// tool reporting at least this version.
	MinToolVersion string `yaml:"min_tool_version"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BuildDir:       "build",
		Artifacts:      []string{"build", "bin"},
		DebugBuildType: "Debug",
		Tools: Tools{
			Configure: "cmake",
			Compile:   "make",
			Test:      "ctest",
		},
	}
}

// Load reads the config file at path over the defaults. The file must
// exist; use LoadDefault when the file is optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

// LoadDefault loads <root>/.bake.yml when present, falling back to the
// built-in defaults, then applies environment overrides.
func LoadDefault(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, DefaultFile))
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg = Default()
	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("BAKE_BUILD_DIR"); v != "" {
		c.BuildDir = v
	}
	if v := os.Getenv("BAKE_ARTIFACTS"); v != "" {
		c.Artifacts = splitList(v)
	}
	if v := os.Getenv("BAKE_GENERATOR"); v != "" {
		c.Generator = v
	}
	if v := os.Getenv("BAKE_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Jobs = n
		}
	}
	if v := os.Getenv("BAKE_CONFIGURE_TOOL"); v != "" {
		c.Tools.Configure = v
	}
	if v := os.Getenv("BAKE_COMPILE_TOOL"); v != "" {
		c.Tools.Compile = v
	}
	if v := os.Getenv("BAKE_TEST_TOOL"); v != "" {
		c.Tools.Test = v
	}
}

// normalize backfills fields a config file may have blanked.
func (c *Config) normalize() {
	def := Default()
	if c.BuildDir == "" {
		c.BuildDir = def.BuildDir
	}
	if c.DebugBuildType == "" {
		c.DebugBuildType = def.DebugBuildType
	}
	if c.Tools.Configure == "" {
		c.Tools.Configure = def.Tools.Configure
	}
	if c.Tools.Compile == "" {
		c.Tools.Compile = def.Tools.Compile
	}
	if c.Tools.Test == "" {
		c.Tools.Test = def.Tools.Test
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
