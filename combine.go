package cksum

import "github.com/hupe1980/cksum/internal/kernel"

// Checksum combination. The raw register is GF(2)-linear in the data, so the
// register of a concatenation is the first register advanced over len(b)
// zero bytes, XOR the second. Advancing by one zero bit is the 32x32
// operator "bit n -> bit n+1, bit 31 -> P"; squaring it per set bit of the
// bit length covers any suffix length in 64 steps.

// gf2Matrix is a column-major GF(2) operator on the 32-bit register:
// m[j] is the image of bit j.
type gf2Matrix [32]uint32

func (m *gf2Matrix) apply(v uint32) uint32 {
	var s uint32
	for i := 0; v != 0; i++ {
		if v&1 != 0 {
			s ^= m[i]
		}
		v >>= 1
	}
	return s
}

func (m *gf2Matrix) square() gf2Matrix {
	var out gf2Matrix
	for i := range out {
		out[i] = m.apply(m[i])
	}
	return out
}

// combineRegisters returns the raw register of a||b given the registers of a
// and b and the byte length of b.
func combineRegisters(crc1, crc2 uint32, len2 uint64) uint32 {
	if len2 == 0 {
		return crc1
	}

	var op gf2Matrix
	for i := 0; i < 31; i++ {
		op[i] = 1 << (i + 1)
	}
	op[31] = kernel.Poly

	// One zero bit per set bit of the suffix bit length, square-and-apply.
	nbits := 8 * len2
	for nbits != 0 {
		if nbits&1 != 0 {
			crc1 = op.apply(crc1)
		}
		op = op.square()
		nbits >>= 1
	}
	return crc1 ^ crc2
}

// polyMulMod returns a*b mod P over GF(2), operands and result as 32-bit
// polynomial remainders.
func polyMulMod(a, b uint32) uint32 {
	var r uint32
	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}
		b >>= 1
		hi := a & 0x80000000
		a <<= 1
		if hi != 0 {
			a ^= kernel.Poly
		}
	}
	return r
}

// xInv is x^-1 mod P, i.e. (P+1)/x. P has a nonzero constant term, so x is
// invertible.
const xInv = 0x82608EDB

// unfinalizePOSIX recovers the raw register from a finalized POSIX checksum:
// undo the complement, strip the length-byte contribution, then multiply by
// x^-8 once per length byte to rewind the fold's register shifts.
func unfinalizePOSIX(sum uint32, length uint64) uint32 {
	reg := ^sum
	if length == 0 {
		return reg
	}

	reg ^= kernel.LengthFold(0, length)

	xInv8 := polyMulMod(xInv, xInv)
	xInv8 = polyMulMod(xInv8, xInv8) // x^-4
	xInv8 = polyMulMod(xInv8, xInv8) // x^-8
	for lb := length; lb != 0; lb >>= 8 {
		reg = polyMulMod(reg, xInv8)
	}
	return reg
}

// Combine merges two finalized Results with append semantics: the returned
// Result is what a single pass over the concatenated inputs would have
// produced. Both inputs must have been computed with the algorithm the
// options select (POSIX by default).
func Combine(a, b Result, opts ...Option) (Result, error) {
	o := applyOptions(opts)

	length := a.Length + b.Length
	if length < a.Length {
		return Result{}, ErrLengthOverflow
	}

	regA := o.algorithm.unfinalize(a.Sum, a.Length)
	regB := o.algorithm.unfinalize(b.Sum, b.Length)
	reg := combineRegisters(regA, regB, b.Length)

	return Result{Sum: o.algorithm.finalize(reg, length), Length: length}, nil
}

// Merge appends another digest's stream to this one, as if other's data had
// been written after d's. Both digests must use the same algorithm. The
// other digest is not modified.
func (d *Digest) Merge(other *Digest) error {
	length := d.length + other.length
	if length < d.length {
		return ErrLengthOverflow
	}
	d.crc = combineRegisters(d.crc, other.crc, other.length)
	d.length = length
	return nil
}
