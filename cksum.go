package cksum

import (
	"encoding/binary"

	"github.com/hupe1980/cksum/internal/kernel"
)

// Digest computes a checksum incrementally. It implements hash.Hash32.
// The engine is resolved once at construction; the 32-bit register and the
// 64-bit length counter are the only state carried between writes, which is
// what makes every engine freely composable chunk by chunk.
type Digest struct {
	crc    uint32
	length uint64
	kind   kernel.Kind
	alg    Algorithm
}

// New creates a Digest. By default it computes the POSIX checksum with the
// widest engine the detected capabilities admit.
func New(opts ...Option) *Digest {
	o := applyOptions(opts)
	return &Digest{
		kind: o.resolveKernel(),
		alg:  o.algorithm,
	}
}

// Write absorbs p into the digest. It fails with ErrLengthOverflow if the
// length counter would wrap; the digest is left unchanged in that case.
func (d *Digest) Write(p []byte) (int, error) {
	if d.length+uint64(len(p)) < d.length {
		return 0, ErrLengthOverflow
	}
	d.crc = kernel.Update(d.kind, d.crc, p)
	d.length += uint64(len(p))
	return len(p), nil
}

// Sum32 returns the finalized checksum of the bytes written so far. The
// digest itself is not finalized and can keep absorbing data.
func (d *Digest) Sum32() uint32 {
	return d.alg.finalize(d.crc, d.length)
}

// Sum appends the big-endian 4-byte checksum to b.
func (d *Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, d.Sum32())
}

// Reset returns the digest to its initial state. The engine and algorithm
// are kept.
func (d *Digest) Reset() {
	d.crc = 0
	d.length = 0
}

// Size returns the checksum size in bytes.
func (d *Digest) Size() int { return 4 }

// BlockSize returns 1: any write granularity yields the same result.
func (d *Digest) BlockSize() int { return 1 }

// Len returns the number of bytes written so far.
func (d *Digest) Len() uint64 { return d.length }

// Kernel returns the engine the digest computes with.
func (d *Digest) Kernel() kernel.Kind { return d.kind }

// Algorithm returns the digest's algorithm.
func (d *Digest) Algorithm() Algorithm { return d.alg }

// Checksum is a one-shot convenience over a byte slice.
func Checksum(p []byte, opts ...Option) uint32 {
	o := applyOptions(opts)
	crc := kernel.Update(o.resolveKernel(), 0, p)
	return o.algorithm.finalize(crc, uint64(len(p)))
}
