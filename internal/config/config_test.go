package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "build", cfg.BuildDir)
	assert.Equal(t, []string{"build", "bin"}, cfg.Artifacts)
	assert.Equal(t, "Debug", cfg.DebugBuildType)
	assert.Equal(t, "cmake", cfg.Tools.Configure)
	assert.Equal(t, "make", cfg.Tools.Compile)
	assert.Equal(t, "ctest", cfg.Tools.Test)
	assert.Zero(t, cfg.Jobs)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bake.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
build_dir: out
artifacts: [out, dist]
generator: Ninja
jobs: 8
defines:
  BUILD_SHARED_LIBS: "ON"
tools:
  compile: ninja
min_tool_version: "3.16"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.BuildDir)
	assert.Equal(t, []string{"out", "dist"}, cfg.Artifacts)
	assert.Equal(t, "Ninja", cfg.Generator)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, "ON", cfg.Defines["BUILD_SHARED_LIBS"])
	assert.Equal(t, "ninja", cfg.Tools.Compile)
	// Unset tool names keep their defaults.
	assert.Equal(t, "cmake", cfg.Tools.Configure)
	assert.Equal(t, "ctest", cfg.Tools.Test)
	assert.Equal(t, "3.16", cfg.MinToolVersion)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bake.yml")
	require.NoError(t, os.WriteFile(path, []byte("build_dir: [unterminated"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadDefaultWithoutFile(t *testing.T) {
	cfg, err := LoadDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDefaultWithFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultFile), []byte("build_dir: out\n"), 0o644))

	cfg, err := LoadDefault(root)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.BuildDir)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BAKE_BUILD_DIR", "envbuild")
	t.Setenv("BAKE_ARTIFACTS", "envbuild, dist")
	t.Setenv("BAKE_GENERATOR", "Ninja")
	t.Setenv("BAKE_JOBS", "2")
	t.Setenv("BAKE_COMPILE_TOOL", "gmake")

	cfg, err := LoadDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "envbuild", cfg.BuildDir)
	assert.Equal(t, []string{"envbuild", "dist"}, cfg.Artifacts)
	assert.Equal(t, "Ninja", cfg.Generator)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, "gmake", cfg.Tools.Compile)
}

func TestEnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultFile), []byte("build_dir: filedir\n"), 0o644))
	t.Setenv("BAKE_BUILD_DIR", "envdir")

	cfg, err := LoadDefault(root)
	require.NoError(t, err)
	assert.Equal(t, "envdir", cfg.BuildDir)
}

func TestEnvInvalidJobsIgnored(t *testing.T) {
	t.Setenv("BAKE_JOBS", "many")
	cfg, err := LoadDefault(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, cfg.Jobs)
}
