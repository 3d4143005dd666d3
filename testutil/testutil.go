// Package testutil provides deterministic test data and an independent
// bit-serial CRC reference for validating the computation engines.
package testutil

import "encoding/binary"

const defaultSeed = 0x123

// Bytes returns n deterministic pseudo-random bytes from an xorshift32
// generator with the default seed. The stream is stable across runs and
// platforms, so expected checksums can be precomputed.
func Bytes(n int) []byte {
	return BytesSeed(n, defaultSeed)
}

// BytesSeed is Bytes with an explicit seed.
func BytesSeed(n int, seed uint32) []byte {
	out := make([]byte, (n+3)&^3)
	s := seed
	for i := 0; i < len(out); i += 4 {
		s ^= s << 13
		s ^= s >> 17
		s ^= s << 5
		binary.LittleEndian.PutUint32(out[i:], s)
	}
	return out[:n]
}

// RefUpdate advances crc over p one bit at a time with the POSIX generator
// polynomial. Slow but independent of every table and fold shortcut; ground
// truth for the engine tests.
func RefUpdate(crc uint32, p []byte) uint32 {
	const poly = 0x04C11DB7
	for _, b := range p {
		crc ^= uint32(b) << 24
		for i := 0; i < 8; i++ {
			if crc&0x80000000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// RefSum computes the finalized POSIX cksum of p via RefUpdate. The length
// fold is the same per-byte operation applied to the length bytes, least
// significant first.
func RefSum(p []byte) uint32 {
	crc := RefUpdate(0, p)
	for length := uint64(len(p)); length != 0; length >>= 8 {
		crc = RefUpdate(crc, []byte{byte(length)})
	}
	return ^crc
}
