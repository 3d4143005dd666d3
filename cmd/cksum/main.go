// Command cksum prints CRC checksums and byte counts of its inputs in the
// POSIX cksum output format, verifies checksum manifests, and optionally
// reads compressed or remote (S3/MinIO) inputs.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if err != errFailures {
			fmt.Fprintf(os.Stderr, "cksum: %v\n", err)
		}
		os.Exit(1)
	}
}
