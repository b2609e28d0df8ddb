// Package aes128 implements the AES-128 block cipher (FIPS-197): the key
// schedule that expands a 16-byte key into 11 round keys, and the 10-round
// transform over a single 16-byte block in both directions.
//
// A block is a 4x4 byte matrix filled column-major: byte 0 is row 0 of
// column 0, byte 1 is row 1 of column 0, byte 4 is row 0 of column 1.
//
// The array-typed functions (ExpandKey, Encrypt, Decrypt) cannot fail. The
// slice-typed functions validate their inputs and return one of
// ErrInvalidKeyLength, ErrInvalidBlockLength or ErrInvalidExpandedKeyLength
// before any state is transformed. Cipher adapts an expanded key to
// crypto/cipher.Block.
//
// No function here mutates shared state. An ExpandedKey may be used from
// many goroutines at once as long as nobody writes to it.
package aes128

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16
	// KeySize is the AES-128 key size in bytes.
	KeySize = 16
	// Rounds is the number of AES-128 rounds.
	Rounds = 10
	// ExpandedKeySize is the size of the key schedule: one round key per
	// round plus the initial one.
	ExpandedKeySize = BlockSize * (Rounds + 1)
)

// Block is one 16-byte cipher state, plaintext or ciphertext.
type Block [BlockSize]byte

// Key is an AES-128 cipher key.
type Key [KeySize]byte

// ExpandedKey holds the 11 round keys produced by ExpandKey, concatenated.
type ExpandedKey [ExpandedKeySize]byte

// RoundKey returns round key r, 0 <= r <= Rounds.
func (xk *ExpandedKey) RoundKey(r int) [BlockSize]byte {
	var rk [BlockSize]byte
	copy(rk[:], xk[r*BlockSize:(r+1)*BlockSize])
	return rk
}
