package kernel

import "encoding/binary"

// updateSlice8 is the table-driven reference engine: two big-endian 32-bit
// words per 8-byte stride, eight table lookups combined per stride, trailing
// bytes through the single-byte update. Correct at every length; every other
// engine is tested against it.
func updateSlice8(crc uint32, p []byte) uint32 {
	for len(p) >= 8 {
		first := binary.BigEndian.Uint32(p)
		second := binary.BigEndian.Uint32(p[4:])
		crc ^= first
		crc = crctab[7][byte(crc>>24)] ^
			crctab[6][byte(crc>>16)] ^
			crctab[5][byte(crc>>8)] ^
			crctab[4][byte(crc)] ^
			crctab[3][byte(second>>24)] ^
			crctab[2][byte(second>>16)] ^
			crctab[1][byte(second>>8)] ^
			crctab[0][byte(second)]
		p = p[8:]
	}
	for _, b := range p {
		crc = updateByte(crc, b)
	}
	return crc
}
