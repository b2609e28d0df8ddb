// Package keys turns user input into AES-128 keys and blocks: hex parsing in
// the formats found in test vector listings, passphrase derivation, and key
// check values for identifying a key in logs without revealing it.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"aescore/pkg/aes128"

	"golang.org/x/crypto/hkdf"
)

var ErrInvalidHex = errors.New("keys: invalid hex string")

// kdfInfo binds derived keys to this use.
const kdfInfo = "aescore aes128 key"

// Format returns the lowercase hex encoding of data.
func Format(data []byte) string {
	return hex.EncodeToString(data)
}

// FormatSpaced returns data as uppercase hex bytes separated by spaces,
// e.g. "E8 E9 EA".
func FormatSpaced(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// ParseHex decodes s, ignoring whitespace, commas, colons and "0x" prefixes.
func ParseHex(s string) ([]byte, error) {
	s = strings.NewReplacer("0x", " ", "0X", " ", ",", " ", ":", " ").Replace(s)
	s = strings.Join(strings.Fields(s), "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of digits", ErrInvalidHex)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

// ParseKey parses a 16-byte hex key.
func ParseKey(s string) (aes128.Key, error) {
	b, err := ParseHex(s)
	if err != nil {
		return aes128.Key{}, err
	}
	if len(b) != aes128.KeySize {
		return aes128.Key{}, fmt.Errorf("%w: got %d, want %d", aes128.ErrInvalidKeyLength, len(b), aes128.KeySize)
	}
	return aes128.Key(b), nil
}

// ParseBlock parses a 16-byte hex block.
func ParseBlock(s string) (aes128.Block, error) {
	b, err := ParseHex(s)
	if err != nil {
		return aes128.Block{}, err
	}
	if len(b) != aes128.BlockSize {
		return aes128.Block{}, fmt.Errorf("%w: got %d, want %d", aes128.ErrInvalidBlockLength, len(b), aes128.BlockSize)
	}
	return aes128.Block(b), nil
}

// DeriveKey derives an AES-128 key from a passphrase with HKDF-SHA256.
// salt may be nil.
func DeriveKey(passphrase string, salt []byte) (aes128.Key, error) {
	if passphrase == "" {
		return aes128.Key{}, errors.New("keys: empty passphrase")
	}
	r := hkdf.New(sha256.New, []byte(passphrase), salt, []byte(kdfInfo))
	var key aes128.Key
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return aes128.Key{}, err
	}
	return key, nil
}

// CheckValue returns the key check value of c: the first three bytes of the
// encryption of an all-zero block.
func CheckValue(c *aes128.Cipher) [3]byte {
	ct := c.EncryptBlock(aes128.Block{})
	return [3]byte{ct[0], ct[1], ct[2]}
}
