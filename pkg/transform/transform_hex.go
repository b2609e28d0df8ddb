package transform

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

type hexTransform struct{}

// NewHexTransform encodes to lowercase hex on Apply. Reverse tolerates
// surrounding whitespace.
func NewHexTransform() Transform { return &hexTransform{} }

func (h *hexTransform) Apply(data []byte) ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(data)))
	hex.Encode(out, data)
	return out, nil
}

func (h *hexTransform) Reverse(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(data)
	out := make([]byte, hex.DecodedLen(len(data)))
	if _, err := hex.Decode(out, data); err != nil {
		return nil, fmt.Errorf("hex reverse (decode): %w", err)
	}
	return out, nil
}
