package cksum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/cksum/internal/kernel"
)

// Result is one stream's finalized checksum and byte count.
type Result struct {
	Sum    uint32
	Length uint64
}

// String renders the two-field output form: "<sum> <length>".
func (r Result) String() string {
	return fmt.Sprintf("%d %d", r.Sum, r.Length)
}

// SumReader computes the checksum of everything r yields. Reads happen in
// chunks into a driver-owned buffer; the context is checked between chunks;
// I/O errors abort with no partial result. The chunk size never influences
// the checksum.
func SumReader(ctx context.Context, r io.Reader, opts ...Option) (Result, error) {
	if r == nil {
		return Result{}, ErrNilReader
	}

	o := applyOptions(opts)
	kind := o.resolveKernel()
	logger := o.logger.WithKernelKind(kind)

	start := time.Now()
	buf := make([]byte, o.chunkSize)
	progress := rate.Sometimes{Interval: time.Second}

	var crc uint32
	length := o.initialLength
	for {
		if err := ctx.Err(); err != nil {
			o.metrics.RecordError(err)
			return Result{}, err
		}

		n, err := r.Read(buf)
		if n > 0 {
			if length+uint64(n) < length {
				o.metrics.RecordError(ErrLengthOverflow)
				return Result{}, ErrLengthOverflow
			}
			chunkStart := time.Now()
			crc = kernel.Update(kind, crc, buf[:n])
			length += uint64(n)
			o.metrics.RecordChunk(n, time.Since(chunkStart))
			progress.Do(func() {
				logger.DebugContext(ctx, "checksum progress", "bytes", length)
			})
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			o.metrics.RecordError(err)
			return Result{}, err
		}
	}

	res := Result{Sum: o.algorithm.finalize(crc, length), Length: length}
	o.metrics.RecordChecksum(length, time.Since(start))
	logger.DebugContext(ctx, "checksum completed", "sum", res.Sum, "length", res.Length)
	return res, nil
}

// SumFile opens name through the configured source (local files by default,
// "-" for stdin, optionally decompressed or remote) and checksums the
// stream.
func SumFile(ctx context.Context, name string, opts ...Option) (Result, error) {
	o := applyOptions(opts)

	rc, err := o.source.Open(ctx, name)
	if err != nil {
		o.logger.LogChecksum(ctx, name, Result{}, err)
		return Result{}, err
	}

	res, err := SumReader(ctx, rc, opts...)
	cerr := rc.Close()
	if err == nil {
		err = cerr
	}
	o.logger.LogChecksum(ctx, name, res, err)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
