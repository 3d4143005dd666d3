// Package cksum computes the POSIX CRC-32 checksum (the cksum utility's
// algorithm) and its plain CRC-32 sibling over arbitrary byte streams.
//
// Key features:
//   - Four interchangeable computation engines with bit-identical results:
//     table-driven slice-by-8, a forward-propagation (Chorba) engine, and
//     carry-less-multiply folding at 128, 256 and 512-bit widths
//   - Engine selection from an explicit capability descriptor, with a
//     CKSUM_KERNEL environment override
//   - hash.Hash32-compatible Digest plus streaming drivers with context
//     support, chunked reads and length-overflow detection
//   - Checksum combination for split/merge workflows without re-reading data
//   - Concurrent multi-input driver (order-preserving) and hashing
//     io.Writer/io.Reader wrappers with mismatch verification
//   - Manifest parsing, formatting and verification (cksum output format)
//   - Input resolution with optional transparent decompression and S3/MinIO
//     backends
//
// The computation of a single stream is strictly sequential; concurrency
// exists only across independent inputs.
package cksum
