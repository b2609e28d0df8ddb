package aes128

import "crypto/cipher"

// Cipher is an AES-128 instance bound to one key. It is read-only after
// NewCipher returns and may be shared between goroutines.
type Cipher struct {
	xk   ExpandedKey
	mode SubstitutionMode
	s    substitution
}

var _ cipher.Block = (*Cipher)(nil)

// Option configures a Cipher.
type Option func(*Cipher)

// WithSubstitution selects how S-box lookups are performed, for the key
// schedule as well as for every block.
func WithSubstitution(mode SubstitutionMode) Option {
	return func(c *Cipher) { c.mode = mode }
}

// NewCipher expands key, which must be KeySize bytes long.
func NewCipher(key []byte, opts ...Option) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, lengthError(ErrInvalidKeyLength, len(key), KeySize)
	}
	c := &Cipher{mode: SubstitutionTable}
	for _, opt := range opts {
		opt(c)
	}
	c.s = c.mode.substitution()
	c.xk = expandKey(Key(key), c.s.sub)
	return c, nil
}

// BlockSize returns the block size in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Mode reports the substitution mode the cipher was built with.
func (c *Cipher) Mode() SubstitutionMode { return c.mode }

// ExpandedKey returns a copy of the key schedule.
func (c *Cipher) ExpandedKey() ExpandedKey { return c.xk }

// Encrypt encrypts the first block of src into dst.
// Like crypto/aes it panics if either buffer is shorter than a block.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("aes128: input not full block")
	}
	out := encryptBlock(Block(src[:BlockSize]), &c.xk, c.s.sub)
	copy(dst, out[:])
}

// Decrypt decrypts the first block of src into dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("aes128: input not full block")
	}
	out := decryptBlock(Block(src[:BlockSize]), &c.xk, c.s.inv)
	copy(dst, out[:])
}

// EncryptBlock is the array form of Encrypt.
func (c *Cipher) EncryptBlock(src Block) Block {
	return encryptBlock(src, &c.xk, c.s.sub)
}

// DecryptBlock is the array form of Decrypt.
func (c *Cipher) DecryptBlock(src Block) Block {
	return decryptBlock(src, &c.xk, c.s.inv)
}
