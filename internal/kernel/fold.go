package kernel

import "encoding/binary"

// The folding engines treat the buffer as a stream of W-bit blocks (W/128
// lanes of 128 bits, big-endian) and reduce it with carry-less
// multiplications: folding a block across a distance of k blocks multiplies
// its two 64-bit halves by x^(kW) and x^(kW+64) mod P and XORs the product
// onto the destination. Lanes keep a constant relative distance, so wide
// folds apply the lane fold independently per lane. One implementation
// serves all three widths; only the constants differ.

// foldK is a fold-distance constant pair: lo multiplies the low half of a
// lane, hi the high half.
type foldK struct {
	lo, hi uint64
}

// lane is one 128-bit lane, big-endian: hi holds stream bytes 0..7.
type lane struct {
	hi, lo uint64
}

// block is one W-bit block; the first foldWidth.lanes entries are in use.
type block [4]lane

// foldWidth describes one engine width.
type foldWidth struct {
	blockBytes int
	lanes      int
	single     foldK // x^W,   x^(W+64)
	four       foldK // x^4W,  x^(4W+64)
	twelve     foldK // x^12W, x^(12W+64)
}

var (
	fold128Width = foldWidth{
		blockBytes: 16,
		lanes:      1,
		single:     foldK{0xE8A45605, 0xC5B9CD4C},
		four:       foldK{0xE6228B11, 0x8833794C},
		twelve:     foldK{0xD2536D46, 0xDC53DFCC},
	}
	fold256Width = foldWidth{
		blockBytes: 32,
		lanes:      2,
		single:     foldK{0x75BE46B7, 0x569700E5},
		four:       foldK{0x567FDDEB, 0x10BD4D7C},
		twelve:     foldK{0x3CD4B4ED, 0x1D97B060},
	}
	fold512Width = foldWidth{
		blockBytes: 64,
		lanes:      4,
		single:     foldK{0xE6228B11, 0x8833794C},
		four:       foldK{0x88FE2237, 0xCBCF3BCB},
		twelve:     foldK{0x413686A0, 0x9DEF026A},
	}
)

// chorbaFoldMasks drives the chorba interleave inside the main fold round:
// 8 groups of 4 loads; bit i set means the i-th chorba block is XORed into
// that load. The schedule is width-invariant.
var chorbaFoldMasks = [8][4]uint8{
	{0x04, 0x09, 0x13, 0x26},
	{0x4C, 0x98, 0x30, 0x60},
	{0xC1, 0x82, 0x04, 0x08},
	{0x11, 0x23, 0x47, 0x8E},
	{0x1D, 0x3B, 0x76, 0xED},
	{0xDB, 0xB6, 0x6D, 0xDB},
	{0xB7, 0x6E, 0xDC, 0xB8},
	{0x70, 0xE0, 0xC0, 0x80},
}

func loadBlock(p []byte, lanes int) block {
	var b block
	for l := 0; l < lanes; l++ {
		b[l].hi = binary.BigEndian.Uint64(p[16*l:])
		b[l].lo = binary.BigEndian.Uint64(p[16*l+8:])
	}
	return b
}

func storeBlock(p []byte, b block, lanes int) {
	for l := 0; l < lanes; l++ {
		binary.BigEndian.PutUint64(p[16*l:], b[l].hi)
		binary.BigEndian.PutUint64(p[16*l+8:], b[l].lo)
	}
}

func xorBlock(dst *block, src *block, lanes int) {
	for l := 0; l < lanes; l++ {
		dst[l].hi ^= src[l].hi
		dst[l].lo ^= src[l].lo
	}
}

func foldBlock(b block, k foldK, lanes int) block {
	var out block
	for l := 0; l < lanes; l++ {
		h1, l1 := clmul64(b[l].lo, k.lo)
		h2, l2 := clmul64(b[l].hi, k.hi)
		out[l] = lane{hi: h1 ^ h2, lo: l1 ^ l2}
	}
	return out
}

// updateFold runs the folding engine at one width. The register enters as a
// big-endian XOR onto the first four stream bytes of the first block and
// leaves through the table-driven byte tail. Residues are collapsed into a
// local scratch tail; the caller's buffer is never written.
func updateFold(crc uint32, p []byte, w *foldWidth) uint32 {
	bb := w.blockBytes
	n := len(p)
	tail := p

	if n >= 4*bb {
		var acc [4]block
		for k := 0; k < 4; k++ {
			acc[k] = loadBlock(p[k*bb:], w.lanes)
		}
		acc[0][0].hi ^= uint64(crc) << 32
		crc = 0
		pos := 4 * bb

		// Chorba-interleaved round: 8 chorba blocks, then one twelve-distance
		// group and seven four-distance groups of 4 loads each (40 blocks).
		for n-pos >= 40*bb {
			var ch [8]block
			for k := 0; k < 8; k++ {
				ch[k] = loadBlock(p[pos+k*bb:], w.lanes)
			}
			xorBlock(&ch[6], &ch[0], w.lanes)
			xorBlock(&ch[7], &ch[1], w.lanes)
			pos += 8 * bb

			for g := 0; g < 8; g++ {
				k := w.four
				if g == 0 {
					k = w.twelve
				}
				for j := 0; j < 4; j++ {
					blk := loadBlock(p[pos+j*bb:], w.lanes)
					m := chorbaFoldMasks[g][j]
					for ci := 0; ci < 8; ci++ {
						if m&(1<<ci) != 0 {
							xorBlock(&blk, &ch[ci], w.lanes)
						}
					}
					folded := foldBlock(acc[j], k, w.lanes)
					xorBlock(&folded, &blk, w.lanes)
					acc[j] = folded
				}
				pos += 4 * bb
			}
		}

		// Plain four-distance folding.
		for n-pos >= 4*bb {
			for j := 0; j < 4; j++ {
				blk := loadBlock(p[pos+j*bb:], w.lanes)
				folded := foldBlock(acc[j], w.four, w.lanes)
				xorBlock(&folded, &blk, w.lanes)
				acc[j] = folded
			}
			pos += 4 * bb
		}

		scratch := make([]byte, 4*bb+(n-pos))
		for k := 0; k < 4; k++ {
			storeBlock(scratch[k*bb:], acc[k], w.lanes)
		}
		copy(scratch[4*bb:], p[pos:])
		tail = scratch
	}

	// Single-distance folding over what remains.
	if len(tail) >= 2*bb {
		reg := loadBlock(tail, w.lanes)
		reg[0].hi ^= uint64(crc) << 32
		crc = 0
		t := bb
		for len(tail)-t >= bb {
			blk := loadBlock(tail[t:], w.lanes)
			folded := foldBlock(reg, w.single, w.lanes)
			xorBlock(&folded, &blk, w.lanes)
			reg = folded
			t += bb
		}
		out := make([]byte, bb+len(tail)-t)
		storeBlock(out, reg, w.lanes)
		copy(out[bb:], tail[t:])
		tail = out
	}

	for _, b := range tail {
		crc = updateByte(crc, b)
	}
	return crc
}
