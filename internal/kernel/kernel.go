// Package kernel implements the POSIX CRC-32 computation engines: scalar
// slice-by-8, the Chorba forward-propagation engine, and carry-less-multiply
// folding at 128, 256 and 512 bits. All engines are pure per-chunk updates of
// the 32-bit register and produce bit-identical results at every length.
package kernel

import (
	"os"
	"strings"
)

// Kind selects a computation engine.
type Kind uint8

const (
	// Slice8 is the table-driven scalar engine (reference).
	Slice8 Kind = iota
	// Chorba is the forward-propagation engine.
	Chorba
	// Fold128 is the carry-less-multiply folding engine at 128-bit width.
	Fold128
	// Fold256 is the folding engine at 256-bit width.
	Fold256
	// Fold512 is the folding engine at 512-bit width.
	Fold512
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case Slice8:
		return "slice8"
	case Chorba:
		return "chorba"
	case Fold128:
		return "fold128"
	case Fold256:
		return "fold256"
	case Fold512:
		return "fold512"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slice8":
		return Slice8, true
	case "chorba":
		return Chorba, true
	case "fold128":
		return Fold128, true
	case "fold256":
		return Fold256, true
	case "fold512":
		return Fold512, true
	default:
		return Slice8, false
	}
}

// Update advances the raw (pre-finalization) register over p with the given
// engine. Updates compose: Update(k, Update(k, c, a), b) equals
// Update(k, c, a+b) for every kind and split point.
func Update(k Kind, crc uint32, p []byte) uint32 {
	switch k {
	case Chorba:
		return updateChorba(crc, p)
	case Fold128:
		return updateFold(crc, p, &fold128Width)
	case Fold256:
		return updateFold(crc, p, &fold256Width)
	case Fold512:
		return updateFold(crc, p, &fold512Width)
	default:
		return updateSlice8(crc, p)
	}
}

// Capability is a bit set describing carry-less-multiply support, the input
// to engine selection. Detection fills it from the CPU; callers may override
// it wholesale to pin a policy.
type Capability uint8

const (
	// CapCLMUL indicates 128-bit carry-less multiply (x86 PCLMULQDQ).
	CapCLMUL Capability = 1 << iota
	// CapCLMUL256 indicates 256-bit vectorized carry-less multiply.
	CapCLMUL256
	// CapCLMUL512 indicates 512-bit vectorized carry-less multiply.
	CapCLMUL512
	// CapPMULL indicates ARM64 polynomial multiply.
	CapPMULL
)

// detected is filled by the platform init functions before any other code
// runs; it stays empty on platforms without a probe.
var detected Capability

// Detect returns the capability set probed from the CPU at startup.
func Detect() Capability {
	return detected
}

// Available reports whether an engine is admitted under the capability set.
// The scalar engines always are.
func Available(k Kind, caps Capability) bool {
	switch k {
	case Fold128:
		return caps&(CapCLMUL|CapPMULL) != 0
	case Fold256:
		return caps&CapCLMUL256 != 0
	case Fold512:
		return caps&CapCLMUL512 != 0
	default:
		return true
	}
}

// kernelEnv names the environment override for engine selection.
const kernelEnv = "CKSUM_KERNEL"

// Select picks the widest engine the capability set admits. A CKSUM_KERNEL
// environment override is honored when it names an admitted engine and
// silently falls back to auto-selection otherwise.
func Select(caps Capability) Kind {
	if s := os.Getenv(kernelEnv); s != "" {
		if k, ok := ParseKind(s); ok && Available(k, caps) {
			return k
		}
	}
	switch {
	case caps&CapCLMUL512 != 0:
		return Fold512
	case caps&CapCLMUL256 != 0:
		return Fold256
	case caps&(CapCLMUL|CapPMULL) != 0:
		return Fold128
	default:
		return Chorba
	}
}
