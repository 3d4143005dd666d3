package kernel

import "encoding/binary"

// The Chorba engines propagate the register forward through the buffer as
// shifted partial products instead of reducing it at every stride, deferring
// table reduction to a short tail. The shift set below splits one 64-bit
// word's contribution across the following strides.

// chorbaShift returns the four shifted partials of v.
func chorbaShift(v uint64) (a1, a2, a3, a4 uint64) {
	a1 = v>>17 ^ v>>55
	a2 = v<<47 ^ v<<9 ^ v>>19
	a3 = v<<45 ^ v>>44
	a4 = v << 20
	return
}

// updateChorba dispatches between the small and large variants.
func updateChorba(crc uint32, p []byte) uint32 {
	if len(p) >= chorbaLargeMin {
		return updateChorbaLarge(crc, p)
	}
	return updateChorbaSmall(crc, p)
}

// updateChorbaSmall processes 32-byte strides with five forward accumulators.
// The incoming register is seeded as the big-endian first four stream bytes;
// below 4 bytes the seed cannot be consumed, so the byte loop runs directly.
func updateChorbaSmall(crc uint32, p []byte) uint32 {
	n := len(p)
	if n < 4 {
		for _, b := range p {
			crc = updateByte(crc, b)
		}
		return crc
	}

	next1 := uint64(crc) << 32
	crc = 0
	var next2, next3, next4, next5 uint64

	i := 0
	for i+72 < n {
		in1 := binary.BigEndian.Uint64(p[i:]) ^ next1
		in2 := binary.BigEndian.Uint64(p[i+8:]) ^ next2
		a1, a2, a3, a4 := chorbaShift(in1)
		b1, b2, b3, b4 := chorbaShift(in2)
		in3 := binary.BigEndian.Uint64(p[i+16:]) ^ next3 ^ a1
		in4 := binary.BigEndian.Uint64(p[i+24:]) ^ next4 ^ a2 ^ b1
		c1, c2, c3, c4 := chorbaShift(in3)
		d1, d2, d3, d4 := chorbaShift(in4)

		next1 = next5 ^ a3 ^ b2 ^ c1
		next2 = a4 ^ b3 ^ c2 ^ d1
		next3 = b4 ^ c3 ^ d2
		next4 = c4 ^ d3
		next5 = d4
		i += 32
	}

	// Land the outstanding accumulators on a zero-padded scratch block so the
	// byte loop sees plain data again. The stride guard above leaves at most
	// 72 bytes here.
	var final [72]byte
	copy(final[:], p[i:])
	for k, nx := range [...]uint64{next1, next2, next3, next4, next5} {
		binary.BigEndian.PutUint64(final[k*8:], binary.BigEndian.Uint64(final[k*8:])^nx)
	}
	for _, b := range final[:n-i] {
		crc = updateByte(crc, b)
	}
	return crc
}
