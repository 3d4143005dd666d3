package source

import (
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// decompress wraps rc according to the name's extension. Unknown extensions
// pass through untouched.
func decompress(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst":
		zr, err := zstd.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &zstdReadCloser{Decoder: zr, underlying: rc}, nil
	case ".gz":
		gr, err := gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
		return &stackedReadCloser{Reader: gr, closers: []io.Closer{gr, rc}}, nil
	case ".lz4":
		return &stackedReadCloser{Reader: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil
	default:
		return rc, nil
	}
}

// zstdReadCloser adapts zstd.Decoder's no-error Close.
type zstdReadCloser struct {
	*zstd.Decoder
	underlying io.Closer
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.underlying.Close()
}

// stackedReadCloser closes a decompressor and its underlying stream.
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
