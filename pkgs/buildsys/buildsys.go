package buildsys

import "context"

// Toolchain captures the shared lifecycle of build helpers.
// It keeps the common configure/compile/test sequence; implementations
// add their own extras.
type Toolchain interface {
	// Configure generates the build system into the build directory.
	Configure(ctx context.Context, args ...string) error

	// Compile builds the configured tree.
	Compile(ctx context.Context, args ...string) error

	// Test runs the configured tree's test suite.
	Test(ctx context.Context, args ...string) error
}
