package kernel

// clmul64 returns the 128-bit carry-less (GF(2) polynomial) product of x and
// y. Portable stand-in for PCLMULQDQ/PMULL; the fold constants have few set
// bits, so iterating y keeps this cheap.
func clmul64(x, y uint64) (hi, lo uint64) {
	for i := uint(0); y != 0; i++ {
		if y&1 != 0 {
			lo ^= x << i
			hi ^= x >> (64 - i) // shift of 64 yields 0 at i == 0
		}
		y >>= 1
	}
	return hi, lo
}
