package kernel

// Poly is the POSIX cksum generator polynomial (unreflected, MSB first).
const Poly = 0x04C11DB7

// crctab holds the slice-by-8 reduction tables. Row 0 is the remainder of a
// single byte shifted 32 bits left; row k is the same byte shifted k bytes
// further. Built once at package init, immutable afterwards.
var crctab [8][256]uint32

func init() {
	// Basis remainders r[k] = x^(32+k) mod P.
	var r [8]uint32
	r[0] = Poly
	for k := 1; k < 8; k++ {
		v := r[k-1] << 1
		if r[k-1]&0x80000000 != 0 {
			v ^= Poly
		}
		r[k] = v
	}

	// Row 0 by basis XOR over the set bits of the byte.
	for i := 0; i < 256; i++ {
		var rem uint32
		for k := 0; k < 8; k++ {
			if i&(1<<k) != 0 {
				rem ^= r[k]
			}
		}
		crctab[0][i] = rem
	}

	// Rows 1..7 advance row 0 one zero byte at a time.
	for i := 0; i < 256; i++ {
		crc := crctab[0][i]
		for row := 1; row < 8; row++ {
			crc = crc<<8 ^ crctab[0][crc>>24]
			crctab[row][i] = crc
		}
	}
}

// Tab0 returns the row-0 table entry for b.
func Tab0(b byte) uint32 {
	return crctab[0][b]
}

func updateByte(crc uint32, b byte) uint32 {
	return crc<<8 ^ crctab[0][byte(crc>>24)^b]
}

// LengthFold feeds the stream length into the register one byte at a time,
// least significant byte first, as the POSIX algorithm requires. It is the
// finalization minus the complement.
func LengthFold(crc uint32, length uint64) uint32 {
	for ; length != 0; length >>= 8 {
		crc = crc<<8 ^ crctab[0][byte(crc>>24)^byte(length)]
	}
	return crc
}

// Finalize turns a raw register into the POSIX cksum value: fold in the
// length bytes, then take the one's complement.
func Finalize(crc uint32, length uint64) uint32 {
	return ^LengthFold(crc, length)
}
