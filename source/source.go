// Package source resolves checksum inputs into sequential byte streams:
// local files, stdin, optionally decompressed streams, and scheme-dispatched
// remote backends. Remote objects are read strictly sequentially; byte order
// is load-bearing for CRC computation.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source opens a named input for sequential reading.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Option configures a source.
type Option func(*config)

type config struct {
	decompress bool
	stdin      io.Reader
}

// WithDecompression enables transparent decompression by file extension
// (.zst, .gz, .lz4). The checksum then covers the decompressed bytes.
func WithDecompression(enabled bool) Option {
	return func(c *config) {
		c.decompress = enabled
	}
}

// WithStdin replaces the stream behind the "-" name. Defaults to os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(c *config) {
		c.stdin = r
	}
}

// FS reads local files; the name "-" is stdin.
type FS struct {
	cfg config
}

// NewFS creates a local filesystem source.
func NewFS(opts ...Option) *FS {
	f := &FS{cfg: config{stdin: os.Stdin}}
	for _, fn := range opts {
		fn(&f.cfg)
	}
	return f
}

// Open opens a local file or stdin.
func (f *FS) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(f.cfg.stdin), nil
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	if !f.cfg.decompress {
		return file, nil
	}
	rc, err := decompress(name, file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return rc, nil
}

// Resolver dispatches on the name's scheme ("s3://bucket/key") and falls
// back to a default source for plain names.
type Resolver struct {
	schemes  map[string]Source
	fallback Source
}

// NewResolver creates a Resolver with the given fallback (NewFS() if nil).
func NewResolver(fallback Source) *Resolver {
	if fallback == nil {
		fallback = NewFS()
	}
	return &Resolver{
		schemes:  make(map[string]Source),
		fallback: fallback,
	}
}

// Register attaches a backend to a scheme, e.g. "s3".
func (r *Resolver) Register(scheme string, s Source) {
	r.schemes[scheme] = s
}

// Open resolves name to a backend and opens it. Names with an unregistered
// scheme fail rather than silently hitting the filesystem.
func (r *Resolver) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	scheme, rest, ok := strings.Cut(name, "://")
	if !ok {
		return r.fallback.Open(ctx, name)
	}
	s, found := r.schemes[scheme]
	if !found {
		return nil, fmt.Errorf("source: unknown scheme %q in %q", scheme, name)
	}
	return s.Open(ctx, rest)
}
