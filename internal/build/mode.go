package build

import "fmt"

// Mode is the single operational behavior selected for one invocation.
// It is derived once from the command line and never mutated.
type Mode int

const (
	// Default configures and compiles.
	Default Mode = iota
	// Debug configures a debug build variant, then compiles.
	Debug
	// Test configures, compiles, then runs the test suite.
	Test
	// Clean removes build artifacts and does nothing else.
	Clean
)

func (m Mode) String() string {
	switch m {
	case Default:
		return "default"
	case Debug:
		return "debug"
	case Test:
		return "test"
	case Clean:
		return "clean"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// UsageError reports a malformed command line.
type UsageError struct {
	Args []string
}

func (e *UsageError) Error() string {
	if len(e.Args) > 1 {
		return fmt.Sprintf("expected at most one mode argument, got %d", len(e.Args))
	}
	return fmt.Sprintf("unknown mode %q (valid modes: debug, test, clean)", e.Args[0])
}

// ParseMode selects the mode from the raw positional arguments:
// zero arguments is Default, exactly one of the literals debug, test
// or clean selects that mode, and anything else is a usage error.
func ParseMode(args []string) (Mode, error) {
	switch len(args) {
	case 0:
		return Default, nil
	case 1:
		// parsed below
	default:
		return Default, &UsageError{Args: args}
	}
	switch args[0] {
	case "debug":
		return Debug, nil
	case "test":
		return Test, nil
	case "clean":
		return Clean, nil
	}
	return Default, &UsageError{Args: args}
}
