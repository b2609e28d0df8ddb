package aes128

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKeyLength         = errors.New("aes128: invalid key length")
	ErrInvalidBlockLength       = errors.New("aes128: invalid block length")
	ErrInvalidExpandedKeyLength = errors.New("aes128: invalid expanded key length")
)

func lengthError(err error, got, want int) error {
	return fmt.Errorf("%w: got %d, want %d", err, got, want)
}

// checkLengths validates the buffers of a slice-typed block operation.
func checkLengths(dst, src, xk []byte) error {
	if len(src) != BlockSize {
		return lengthError(ErrInvalidBlockLength, len(src), BlockSize)
	}
	if len(xk) != ExpandedKeySize {
		return lengthError(ErrInvalidExpandedKeyLength, len(xk), ExpandedKeySize)
	}
	if len(dst) < BlockSize {
		return fmt.Errorf("%w: output buffer holds %d bytes, need %d", ErrInvalidBlockLength, len(dst), BlockSize)
	}
	return nil
}
