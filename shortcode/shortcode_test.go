package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.Len(t, code, Length)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(Alphabet, c), "unexpected character %q in %q", c, code)
		}
	}
}

func TestGenerateNoImmediateRepeats(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := Generate()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %q after %d draws", code, i)
		seen[code] = true
	}
}
