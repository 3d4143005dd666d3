package cksum

import (
	"fmt"
	"strings"

	"github.com/hupe1980/cksum/internal/kernel"
)

// Algorithm selects the finalization applied to the raw register. Both
// algorithms share every computation engine; they differ only in how the
// register leaves the pipeline.
type Algorithm uint8

const (
	// POSIX is the cksum algorithm: fold the stream length into the register
	// byte by byte, then take the one's complement.
	POSIX Algorithm = iota
	// CRC32B is the plain unreflected CRC-32: the register is the checksum.
	// No length fold, no complement, so the empty stream sums to 0.
	CRC32B
)

// String returns the string representation of an Algorithm.
func (a Algorithm) String() string {
	switch a {
	case POSIX:
		return "crc"
	case CRC32B:
		return "crc32b"
	default:
		return "unknown"
	}
}

// ParseAlgorithm parses a string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crc", "posix", "cksum":
		return POSIX, nil
	case "crc32b":
		return CRC32B, nil
	default:
		return POSIX, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// finalize turns a raw register into the checksum value.
func (a Algorithm) finalize(crc uint32, length uint64) uint32 {
	if a == CRC32B {
		return crc
	}
	return kernel.Finalize(crc, length)
}

// unfinalize recovers the raw register from a finalized checksum. The POSIX
// finalization is affine and its length fold invertible, so this is exact.
func (a Algorithm) unfinalize(sum uint32, length uint64) uint32 {
	if a == CRC32B {
		return sum
	}
	return unfinalizePOSIX(sum, length)
}
