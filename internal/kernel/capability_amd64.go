//go:build amd64

package kernel

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasPCLMULQDQ && cpu.X86.HasSSE41 {
		detected |= CapCLMUL
	}
	if cpu.X86.HasAVX512VPCLMULQDQ && cpu.X86.HasAVX2 {
		detected |= CapCLMUL256
	}
	if cpu.X86.HasAVX512VPCLMULQDQ && cpu.X86.HasAVX512F && cpu.X86.HasAVX512VL {
		detected |= CapCLMUL512
	}
}
