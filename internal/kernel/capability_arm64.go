//go:build arm64

package kernel

import "golang.org/x/sys/cpu"

func init() {
	if cpu.ARM64.HasPMULL {
		detected |= CapPMULL
	}
}
