package transform

import (
	"crypto/cipher"
	"fmt"
)

type blockTransform struct{ b cipher.Block }

// NewBlockTransform encrypts on Apply and decrypts on Reverse. Input must be
// exactly one block; no mode of operation or padding is applied.
func NewBlockTransform(b cipher.Block) Transform { return &blockTransform{b: b} }

func (t *blockTransform) check(data []byte) error {
	if len(data) != t.b.BlockSize() {
		return fmt.Errorf("block: got %d bytes, want exactly %d", len(data), t.b.BlockSize())
	}
	return nil
}

func (t *blockTransform) Apply(data []byte) ([]byte, error) {
	if err := t.check(data); err != nil {
		return nil, fmt.Errorf("block apply (encrypt): %w", err)
	}
	out := make([]byte, len(data))
	t.b.Encrypt(out, data)
	return out, nil
}

func (t *blockTransform) Reverse(data []byte) ([]byte, error) {
	if err := t.check(data); err != nil {
		return nil, fmt.Errorf("block reverse (decrypt): %w", err)
	}
	out := make([]byte, len(data))
	t.b.Decrypt(out, data)
	return out, nil
}
