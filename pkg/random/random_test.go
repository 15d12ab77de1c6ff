package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomString_Length(t *testing.T) {
	for _, length := range []int{1, 6, 16, 32} {
		s, err := NewRandomString(length)
		require.NoError(t, err)
		assert.Len(t, s, length)
	}
}

func TestNewRandomString_Alphabet(t *testing.T) {
	s, err := NewRandomString(256)
	require.NoError(t, err)

	for _, r := range s {
		assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected symbol %q", r)
	}
}

func TestNewRandomString_Uniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		s, err := NewRandomString(6)
		require.NoError(t, err)
		_, dup := seen[s]
		assert.False(t, dup, "duplicate short id %q after %d draws", s, i)
		seen[s] = struct{}{}
	}
}

func TestNewRandomString_InvalidLength(t *testing.T) {
	_, err := NewRandomString(0)
	assert.Error(t, err)

	_, err = NewRandomString(-1)
	assert.Error(t, err)
}
