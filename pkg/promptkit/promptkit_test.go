package promptkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildDefaultFence(t *testing.T) {
	out, err := Build(Params{ProjectName: "acme", Files: []string{"main.go", "util.go"}})
	require.NoError(t, err)
	require.Contains(t, out, "acme")
	require.Contains(t, out, "main.go")
	require.Contains(t, out, strings.Repeat("=", 7)+" SEARCH")
}

func TestBuildCustomFenceLength(t *testing.T) {
	out, err := Build(Params{FenceLength: 5})
	require.NoError(t, err)
	require.Contains(t, out, strings.Repeat("=", 5)+" SEARCH")
	require.Contains(t, out, "this project")
}

func TestBuildInvalidFenceLengthFallsBackToDefault(t *testing.T) {
	out, err := Build(Params{FenceLength: 20})
	require.NoError(t, err)
	require.Contains(t, out, strings.Repeat("=", 7)+" SEARCH")
}
