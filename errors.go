package cksum

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthOverflow is returned when the 64-bit length counter would
	// wrap. The computation is aborted; no partial result is produced.
	ErrLengthOverflow = errors.New("cksum: length counter overflow")

	// ErrNilReader is returned when a nil reader is passed to a streaming
	// entry point.
	ErrNilReader = errors.New("cksum: nil reader")

	// ErrNilWriter is returned when a nil writer is passed to NewWriter.
	ErrNilWriter = errors.New("cksum: nil writer")

	// ErrUnknownAlgorithm is returned by ParseAlgorithm for names it does not
	// recognize.
	ErrUnknownAlgorithm = errors.New("cksum: unknown algorithm")

	// ErrUnknownKernel is returned when a kernel name cannot be parsed.
	ErrUnknownKernel = errors.New("cksum: unknown kernel")
)

// MismatchError reports a verification failure: the computed checksum does
// not match the expected one.
type MismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cksum: checksum mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Is reports whether target is a MismatchError with the same expected and
// actual values, so errors.Is works on values rather than pointers.
func (e *MismatchError) Is(target error) bool {
	t, ok := target.(*MismatchError)
	if !ok {
		return false
	}
	return e.Expected == t.Expected && e.Actual == t.Actual
}
