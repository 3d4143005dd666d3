package source

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cksum/testutil"
)

func TestFSOpenFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "plain.bin")
	data := testutil.Bytes(1000)
	require.NoError(t, os.WriteFile(name, data, 0o600))

	fs := NewFS()
	rc, err := fs.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFSOpenMissing(t *testing.T) {
	fs := NewFS()
	_, err := fs.Open(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFSStdin(t *testing.T) {
	fs := NewFS(WithStdin(strings.NewReader("hello")))
	rc, err := fs.Open(context.Background(), "-")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestFSDecompression(t *testing.T) {
	dir := t.TempDir()
	data := testutil.Bytes(20_000)

	writeGz := func(name string) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write(data)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o600))
	}
	writeZst := func(name string) {
		var buf bytes.Buffer
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = zw.Write(data)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o600))
	}
	writeLz4 := func(name string) {
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		_, err := zw.Write(data)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o600))
	}

	files := map[string]func(string){
		"data.gz":  writeGz,
		"data.zst": writeZst,
		"data.lz4": writeLz4,
	}

	fs := NewFS(WithDecompression(true))
	for base, write := range files {
		name := filepath.Join(dir, base)
		write(name)

		rc, err := fs.Open(context.Background(), name)
		require.NoError(t, err, "file=%s", base)

		got, err := io.ReadAll(rc)
		require.NoError(t, err, "file=%s", base)
		require.NoError(t, rc.Close(), "file=%s", base)
		assert.Equal(t, data, got, "file=%s", base)
	}
}

func TestFSDecompressionDisabledPassesThrough(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "raw.gz")
	// Not actually gzip; without decompression the raw bytes come back.
	raw := []byte("not gzip at all")
	require.NoError(t, os.WriteFile(name, raw, 0o600))

	fs := NewFS()
	rc, err := fs.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

type staticSource struct {
	payload string
}

func (s *staticSource) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.payload)), nil
}

func TestResolver(t *testing.T) {
	r := NewResolver(NewFS(WithStdin(strings.NewReader("from stdin"))))
	r.Register("mem", &staticSource{payload: "from mem"})

	rc, err := r.Open(context.Background(), "mem://whatever")
	require.NoError(t, err)
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "from mem", string(got))

	// Plain names hit the fallback.
	rc, err = r.Open(context.Background(), "-")
	require.NoError(t, err)
	got, _ = io.ReadAll(rc)
	assert.Equal(t, "from stdin", string(got))

	// Unknown schemes fail instead of hitting the filesystem.
	_, err = r.Open(context.Background(), "gopher://hole")
	assert.Error(t, err)
}
