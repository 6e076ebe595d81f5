package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Mode
	}{
		{"no args", nil, Default},
		{"empty slice", []string{}, Default},
		{"debug", []string{"debug"}, Debug},
		{"test", []string{"test"}, Test},
		{"clean", []string{"clean"}, Clean},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseModeUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown literal", []string{"release"}},
		{"uppercase literal", []string{"Debug"}},
		{"two args", []string{"debug", "test"}},
		{"three args", []string{"debug", "test", "clean"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMode(tt.args)
			var usage *UsageError
			require.ErrorAs(t, err, &usage)
			assert.Equal(t, tt.args, usage.Args)
		})
	}
}

func TestUsageErrorMessage(t *testing.T) {
	_, err := ParseMode([]string{"release"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"release"`)
	assert.Contains(t, err.Error(), "debug, test, clean")

	_, err = ParseMode([]string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most one")
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "default", Default.String())
	assert.Equal(t, "debug", Debug.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "clean", Clean.String())
}
