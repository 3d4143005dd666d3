package cksum

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMismatchErrorIs(t *testing.T) {
	err := &MismatchError{Expected: 1, Actual: 2}

	// Distinct values compare by field, not by pointer.
	assert.ErrorIs(t, err, &MismatchError{Expected: 1, Actual: 2})
	assert.NotErrorIs(t, err, &MismatchError{Expected: 1, Actual: 3})
	assert.NotErrorIs(t, err, ErrNilReader)

	// Wrapped mismatches still match.
	wrapped := fmt.Errorf("verify: %w", err)
	assert.True(t, errors.Is(wrapped, &MismatchError{Expected: 1, Actual: 2}))
}

func TestMismatchErrorMessage(t *testing.T) {
	err := &MismatchError{Expected: 930766865, Actual: 930766866}
	assert.Equal(t, "cksum: checksum mismatch: expected 930766865, got 930766866", err.Error())
}
