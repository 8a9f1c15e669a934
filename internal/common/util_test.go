package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	// Media keys are minted at 32 bytes, so cover that size explicitly.
	for _, size := range []int{1, 16, 32} {
		s, err := MakeRandHexString(size)
		require.NoError(t, err)
		assert.Len(t, s, size*2)

		decoded, err := hex.DecodeString(s)
		require.NoError(t, err)
		assert.Len(t, decoded, size)
	}

	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestMakeRandHexString_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		s, err := MakeRandHexString(32)
		require.NoError(t, err)
		assert.False(t, seen[s], "duplicate key %s", s)
		seen[s] = true
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret-pass")
	WipeByteArray(buf)
	for i, v := range buf {
		assert.Zerof(t, v, "byte %d not wiped", i)
	}

	assert.NotPanics(t, func() { WipeByteArray(nil) })
	assert.NotPanics(t, func() { WipeByteArray([]byte{}) })
}
