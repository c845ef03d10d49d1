package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePrecedence(t *testing.T) {
	require.Equal(t, "v42", Resolve("v42", "abcdef1234567890"))
	require.Equal(t, "abcdef1", Resolve("", "abcdef1234567890"))
	require.Equal(t, "abc", Resolve("", "abc"))
	require.Equal(t, "v42", Resolve("  v42  ", ""))
}
