package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndCharset(t *testing.T) {
	g := NewNumericGenerator(6)

	code, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, code, 6)

	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "unexpected character %q in %q", c, code)
	}
}

func TestGenerate_MinimumLengthEnforced(t *testing.T) {
	g := NewNumericGenerator(1)

	code, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, code, 4)
}

func TestGenerate_OutputVaries(t *testing.T) {
	g := NewNumericGenerator(8)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		seen[code] = true
	}
	// 50 draws from 10^8 values collide with negligible probability
	assert.Greater(t, len(seen), 1)
}
