package kernel

import (
	"encoding/binary"
	"math/bits"
)

const (
	// chorbaWindow is the forwarding distance in bytes: bits produced by a
	// 256-byte round land this far ahead in the stream.
	chorbaWindow = 118960

	// chorbaLargeMin is the smallest buffer worth the large variant: two full
	// windows plus slack for the tail.
	chorbaLargeMin = 2*chorbaWindow + 512

	// bitbufQwords sizes the circular forwarding buffer (128 KiB).
	bitbufQwords = 16384
)

// updateChorbaLarge runs the 22-accumulator variant: 256-byte rounds over raw
// little-endian loads, with contributions beyond the accumulator reach parked
// in a circular bit buffer one window ahead. The buffer is scoped to this
// call. Three phases: priming rounds before any buffered bits come due, a
// mixed window where only the high rows read back, then steady state.
func updateChorbaLarge(crc uint32, p []byte) uint32 {
	n := len(p)
	bb := make([]uint64, bitbufQwords)

	var next [23]uint64 // next[1] .. next[22]
	// Raw loads are little-endian, so byte-swap the register to land it
	// big-endian on stream bytes 0..3, same as the other engines.
	next[1] = uint64(bits.ReverseBytes32(crc))
	crc = 0

	i := 0
	for i < 118784 {
		i = chorbaLargeRound(i, p, &next, bb, false, false)
	}
	for i < 119040 {
		i = chorbaLargeRound(i, p, &next, bb, false, true)
	}
	for i+chorbaWindow+512 < n {
		i = chorbaLargeRound(i, p, &next, bb, true, true)
	}

	// Flush the accumulators into the buffer at the current position, then
	// clear the look-ahead window the tail is about to re-read. 64 qwords:
	// the small-variant tail can read up to 512 bytes past the window.
	for k := 0; k < 22; k++ {
		bb[(i/8+k)%bitbufQwords] ^= next[1+k]
	}
	for j := chorbaWindow / 8; j < chorbaWindow/8+64; j++ {
		bb[(j+i/8)%bitbufQwords] = 0
	}

	// Small-variant strides with the buffered bits mixed into each load.
	var next1, next2, next3, next4, next5 uint64
	for i+72 < n {
		q := i / 8
		in1 := binary.BigEndian.Uint64(p[i:]) ^ next1 ^ bits.ReverseBytes64(bb[q%bitbufQwords])
		in2 := binary.BigEndian.Uint64(p[i+8:]) ^ next2 ^ bits.ReverseBytes64(bb[(q+1)%bitbufQwords])
		a1, a2, a3, a4 := chorbaShift(in1)
		b1, b2, b3, b4 := chorbaShift(in2)
		in3 := binary.BigEndian.Uint64(p[i+16:]) ^ next3 ^ a1 ^ bits.ReverseBytes64(bb[(q+2)%bitbufQwords])
		in4 := binary.BigEndian.Uint64(p[i+24:]) ^ next4 ^ a2 ^ b1 ^ bits.ReverseBytes64(bb[(q+3)%bitbufQwords])
		c1, c2, c3, c4 := chorbaShift(in3)
		d1, d2, d3, d4 := chorbaShift(in4)

		next1 = next5 ^ a3 ^ b2 ^ c1
		next2 = a4 ^ b3 ^ c2 ^ d1
		next3 = b4 ^ c3 ^ d2
		next4 = c4 ^ d3
		next5 = d4
		i += 32
	}

	var final [72]byte
	copy(final[:], p[i:])
	for k, nx := range [...]uint64{next1, next2, next3, next4, next5} {
		binary.BigEndian.PutUint64(final[k*8:], binary.BigEndian.Uint64(final[k*8:])^nx)
	}
	for j := 0; j < n-i; j++ {
		w := bb[((i+j)%(bitbufQwords*8))/8]
		bbyte := byte(w >> (8 * uint((i+j)%8)))
		crc = updateByte(crc, final[j]^bbyte)
	}
	return crc
}

// chorbaLargeRound consumes one 256-byte round at offset i. Loads 1..22 carry
// the forward accumulators (and, once readLo is set, the buffered bits coming
// due); loads 23..32 read back buffered bits once readHi is set. Cross-feeds
// at 7, 11 and 22 qwords propagate each load into its successors; rows 1..10
// and 11..32 are parked one window ahead at two write offsets.
func chorbaLargeRound(i int, p []byte, next *[23]uint64, bb []uint64, readLo, readHi bool) int {
	var in [33]uint64
	q := (i / 8) % bitbufQwords

	for k := 1; k <= 32; k++ {
		v := binary.LittleEndian.Uint64(p[i+(k-1)*8:])
		if k <= 22 {
			v ^= next[k]
			if readLo {
				v ^= bb[(q+k-1)%bitbufQwords]
			}
		} else if readHi {
			v ^= bb[(q+k-1)%bitbufQwords]
		}
		switch {
		case k >= 23:
			v ^= in[k-22] ^ in[k-11] ^ in[k-7]
		case k >= 12:
			v ^= in[k-11] ^ in[k-7]
		case k >= 8:
			v ^= in[k-7]
		}
		in[k] = v
	}

	for k := 1; k <= 7; k++ {
		next[k] = in[k+10] ^ in[k+21] ^ in[k+25]
	}
	for k := 8; k <= 11; k++ {
		next[k] = in[k+10] ^ in[k+21]
	}
	for k := 12; k <= 22; k++ {
		next[k] = in[k+10]
	}

	out1 := ((i + 118784) / 8) % bitbufQwords
	out2 := ((i + 119040) / 8) % bitbufQwords
	for k := 0; k < 10; k++ {
		bb[(out1+22+k)%bitbufQwords] = in[1+k]
	}
	for k := 0; k < 22; k++ {
		bb[(out2+k)%bitbufQwords] = in[11+k]
	}
	return i + 256
}
