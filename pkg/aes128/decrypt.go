package aes128

// Decrypt inverts Encrypt: it applies the round keys of xk in reverse order
// with the inverse of every round step.
func Decrypt(src Block, xk *ExpandedKey) Block {
	return decryptBlock(src, xk, invSubByteTable)
}

// DecryptBlock decrypts the 16 bytes of src into dst using the 176-byte
// expanded key xk. dst and src may overlap entirely.
func DecryptBlock(dst, src, xk []byte) error {
	if err := checkLengths(dst, src, xk); err != nil {
		return err
	}
	out := Decrypt(Block(src), (*ExpandedKey)(xk))
	copy(dst, out[:])
	return nil
}

func decryptBlock(s Block, xk *ExpandedKey, inv func(byte) byte) Block {
	addRoundKey(&s, xk, Rounds)
	for r := Rounds - 1; r > 0; r-- {
		invShiftRows(&s)
		subBytes(&s, inv)
		addRoundKey(&s, xk, r)
		invMixColumns(&s)
	}
	invShiftRows(&s)
	subBytes(&s, inv)
	addRoundKey(&s, xk, 0)
	return s
}
