package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesDeterministic(t *testing.T) {
	a := Bytes(1000)
	b := Bytes(1000)
	require.Equal(t, a, b)

	// A prefix of a longer stream is the shorter stream.
	assert.Equal(t, a[:100], Bytes(100))

	// Different seeds give different streams.
	assert.NotEqual(t, a, BytesSeed(1000, 0x456))

	assert.Len(t, Bytes(0), 0)
	assert.Len(t, Bytes(7), 7)
}

func TestRefSumKnownVectors(t *testing.T) {
	assert.Equal(t, uint32(4294967295), RefSum(nil))
	assert.Equal(t, uint32(4215202376), RefSum([]byte{0x00}))
	assert.Equal(t, uint32(930766865), RefSum([]byte("123456789")))
}
