package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateProducesEightCharCodes(t *testing.T) {
	code, err := Generate(map[string]struct{}{})
	require.NoError(t, err)
	require.Len(t, code, Length)
	for _, r := range code {
		require.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in code %s", r, code)
	}
}

func TestGenerateAvoidsExistingCodes(t *testing.T) {
	existing := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		code, err := Generate(existing)
		require.NoError(t, err)
		_, taken := existing[code]
		require.False(t, taken, "code %s generated twice", code)
		existing[code] = struct{}{}
	}
	require.Len(t, existing, 500)
}
