package cksum

import (
	"errors"
	"io"
)

// Writer wraps an io.Writer and updates a digest with every byte that was
// actually written.
type Writer struct {
	w io.Writer
	d *Digest
}

// NewWriter creates a hashing writer around w.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &Writer{w: w, d: New(opts...)}, nil
}

// Write passes p through to the underlying writer and absorbs the written
// prefix into the digest.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	if n > 0 {
		if _, derr := w.d.Write(p[:n]); derr != nil && err == nil {
			err = derr
		}
	}
	return n, err
}

// Sum32 returns the finalized checksum of the bytes written so far.
func (w *Writer) Sum32() uint32 { return w.d.Sum32() }

// Result returns the checksum and length of the bytes written so far.
func (w *Writer) Result() Result {
	return Result{Sum: w.d.Sum32(), Length: w.d.Len()}
}

// Reader wraps an io.Reader and updates a digest with every byte read.
// With WithExpectedSum set, reaching EOF on a stream whose checksum
// disagrees yields a MismatchError instead of plain EOF.
type Reader struct {
	r        io.Reader
	d        *Digest
	expected uint32
	verify   bool
}

// NewReader creates a hashing reader around r.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	o := applyOptions(opts)
	return &Reader{
		r:        r,
		d:        New(opts...),
		expected: o.expectedSum,
		verify:   o.expectedSet,
	}, nil
}

// Read reads from the underlying reader and absorbs the bytes read.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		if _, derr := r.d.Write(p[:n]); derr != nil {
			return n, derr
		}
	}
	if errors.Is(err, io.EOF) && r.verify {
		if verr := r.Verify(r.expected); verr != nil {
			return n, verr
		}
	}
	return n, err
}

// Verify compares the checksum of the bytes read so far against expected.
func (r *Reader) Verify(expected uint32) error {
	if actual := r.d.Sum32(); actual != expected {
		return &MismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// Sum32 returns the finalized checksum of the bytes read so far.
func (r *Reader) Sum32() uint32 { return r.d.Sum32() }

// Result returns the checksum and length of the bytes read so far.
func (r *Reader) Result() Result {
	return Result{Sum: r.d.Sum32(), Length: r.d.Len()}
}
