package cksum

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cksum/testutil"
)

func TestWriterRoundTrip(t *testing.T) {
	data := testutil.Bytes(30_000)

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	assert.Equal(t, data, buf.Bytes())
	assert.Equal(t, Checksum(data), w.Sum32())
	assert.Equal(t, Result{Sum: Checksum(data), Length: uint64(len(data))}, w.Result())
}

func TestWriterNil(t *testing.T) {
	_, err := NewWriter(nil)
	assert.ErrorIs(t, err, ErrNilWriter)
}

func TestWriterCountsOnlyWrittenBytes(t *testing.T) {
	data := testutil.Bytes(1000)

	// A writer that accepts half and fails.
	half := &limitedWriter{limit: 500}
	w, err := NewWriter(half)
	require.NoError(t, err)

	_, werr := w.Write(data)
	require.Error(t, werr)
	assert.Equal(t, Checksum(data[:500]), w.Sum32())
}

type limitedWriter struct {
	limit   int
	written int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	room := l.limit - l.written
	if room <= 0 {
		return 0, errors.New("full")
	}
	if len(p) > room {
		l.written = l.limit
		return room, errors.New("full")
	}
	l.written += len(p)
	return len(p), nil
}

func TestReaderRoundTrip(t *testing.T) {
	data := testutil.Bytes(30_000)

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, Checksum(data), r.Sum32())
	require.NoError(t, r.Verify(Checksum(data)))

	verr := r.Verify(Checksum(data) + 1)
	var mismatch *MismatchError
	require.ErrorAs(t, verr, &mismatch)
	assert.Equal(t, Checksum(data), mismatch.Actual)
}

func TestReaderNil(t *testing.T) {
	_, err := NewReader(nil)
	assert.ErrorIs(t, err, ErrNilReader)
}

func TestReaderExpectedSum(t *testing.T) {
	data := testutil.Bytes(5000)

	// Matching expectation: the stream drains normally.
	r, err := NewReader(bytes.NewReader(data), WithExpectedSum(Checksum(data)))
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	require.NoError(t, err)

	// Mismatch surfaces at EOF instead of plain success.
	r, err = NewReader(bytes.NewReader(data), WithExpectedSum(Checksum(data)^1))
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestWriterReaderPipeline(t *testing.T) {
	data := testutil.Bytes(64_000)

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)

	r, err := NewReader(&buf, WithExpectedSum(w.Sum32()))
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, w.Result(), r.Result())
}
