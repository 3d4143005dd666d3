package cksum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cksum/testutil"
)

func TestCombineMatchesSinglePass(t *testing.T) {
	data := testutil.Bytes(120_000)

	splits := []struct {
		la, lb int
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{10, 200},
		{1000, 1},
		{37, 119_000},
		{60_000, 60_000},
	}

	for _, s := range splits {
		a := data[:s.la]
		b := data[s.la : s.la+s.lb]
		whole := Result{Sum: Checksum(data[:s.la+s.lb]), Length: uint64(s.la + s.lb)}

		got, err := Combine(
			Result{Sum: Checksum(a), Length: uint64(s.la)},
			Result{Sum: Checksum(b), Length: uint64(s.lb)},
		)
		require.NoError(t, err, "split=%d+%d", s.la, s.lb)
		assert.Equal(t, whole, got, "split=%d+%d", s.la, s.lb)
	}
}

func TestCombineCRC32B(t *testing.T) {
	data := testutil.Bytes(5000)
	opt := WithAlgorithm(CRC32B)

	whole := Result{Sum: Checksum(data, opt), Length: uint64(len(data))}
	got, err := Combine(
		Result{Sum: Checksum(data[:1234], opt), Length: 1234},
		Result{Sum: Checksum(data[1234:], opt), Length: uint64(len(data) - 1234)},
		opt,
	)
	require.NoError(t, err)
	assert.Equal(t, whole, got)
}

func TestCombineLengthOverflow(t *testing.T) {
	_, err := Combine(
		Result{Sum: 1, Length: math.MaxUint64},
		Result{Sum: 2, Length: 1},
	)
	assert.ErrorIs(t, err, ErrLengthOverflow)
}

func TestDigestMerge(t *testing.T) {
	data := testutil.Bytes(80_000)

	whole := New()
	_, err := whole.Write(data)
	require.NoError(t, err)

	for _, cut := range []int{0, 1, 999, 40_000, len(data)} {
		a := New()
		_, err := a.Write(data[:cut])
		require.NoError(t, err)

		b := New()
		_, err = b.Write(data[cut:])
		require.NoError(t, err)

		require.NoError(t, a.Merge(b))
		assert.Equal(t, whole.Sum32(), a.Sum32(), "cut=%d", cut)
		assert.Equal(t, whole.Len(), a.Len(), "cut=%d", cut)

		// The merged-in digest is untouched.
		assert.Equal(t, uint64(len(data)-cut), b.Len(), "cut=%d", cut)
	}
}

func TestDigestMergeOverflow(t *testing.T) {
	a := New()
	a.length = math.MaxUint64
	b := New()
	b.length = 1

	assert.ErrorIs(t, a.Merge(b), ErrLengthOverflow)
}

func TestUnfinalizeRoundTrip(t *testing.T) {
	data := testutil.Bytes(70_000)

	for _, n := range []int{0, 1, 9, 255, 256, 257, 65_535, 65_536, 70_000} {
		d := New()
		_, err := d.Write(data[:n])
		require.NoError(t, err)

		reg := d.crc
		sum := d.Sum32()
		assert.Equal(t, reg, POSIX.unfinalize(sum, uint64(n)), "len=%d", n)
	}
}
