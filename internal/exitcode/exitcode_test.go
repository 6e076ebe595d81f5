package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cmstack/bake/internal/execx"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"plain error", errors.New("boom"), Failure},
		{"exit error", &execx.ExitError{Program: "make", Code: 2}, 2},
		{
			"wrapped exit error",
			fmt.Errorf("compile: %w", &execx.ExitError{Program: "make", Code: 5}),
			5,
		},
		{
			"deeply wrapped",
			fmt.Errorf("run: %w", fmt.Errorf("configure: %w", &execx.ExitError{Program: "cmake", Code: 3})),
			3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromError(tt.err); got != tt.want {
				t.Errorf("FromError = %d, want %d", got, tt.want)
			}
		})
	}
}
