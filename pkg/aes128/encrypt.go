package aes128

// Encrypt returns the encryption of src under the expanded key xk.
func Encrypt(src Block, xk *ExpandedKey) Block {
	return encryptBlock(src, xk, subByteTable)
}

// EncryptBlock encrypts the 16 bytes of src into dst using the 176-byte
// expanded key xk. dst and src may overlap entirely.
func EncryptBlock(dst, src, xk []byte) error {
	if err := checkLengths(dst, src, xk); err != nil {
		return err
	}
	out := Encrypt(Block(src), (*ExpandedKey)(xk))
	copy(dst, out[:])
	return nil
}

func encryptBlock(s Block, xk *ExpandedKey, sub func(byte) byte) Block {
	addRoundKey(&s, xk, 0)
	for r := 1; r < Rounds; r++ {
		subBytes(&s, sub)
		shiftRows(&s)
		mixColumns(&s)
		addRoundKey(&s, xk, r)
	}
	// the final round has no MixColumns
	subBytes(&s, sub)
	shiftRows(&s)
	addRoundKey(&s, xk, Rounds)
	return s
}
