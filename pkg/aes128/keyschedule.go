package aes128

// ExpandKey runs the AES-128 key schedule (FIPS-197 section 5.2). Round key
// 0 is the key itself; every later round key follows from the previous one
// and a round constant.
func ExpandKey(key Key) ExpandedKey {
	return expandKey(key, subByteTable)
}

// ExpandKeyBytes is ExpandKey for a caller-supplied slice, which must be
// exactly KeySize bytes long.
func ExpandKeyBytes(key []byte) (ExpandedKey, error) {
	if len(key) != KeySize {
		return ExpandedKey{}, lengthError(ErrInvalidKeyLength, len(key), KeySize)
	}
	return ExpandKey(Key(key)), nil
}

// ExpandKeyWith is ExpandKey with the S-box lookups of the given mode.
// Both modes produce the same schedule.
func ExpandKeyWith(key Key, mode SubstitutionMode) ExpandedKey {
	return expandKey(key, mode.substitution().sub)
}

// expandKey treats xk as 44 four-byte words w[0..44).
func expandKey(key Key, sub func(byte) byte) ExpandedKey {
	var xk ExpandedKey
	copy(xk[:KeySize], key[:])

	for i := KeySize / 4; i < ExpandedKeySize/4; i++ {
		var t [4]byte
		copy(t[:], xk[4*(i-1):4*i])
		if i%4 == 0 {
			// RotWord then SubWord
			t[0], t[1], t[2], t[3] = sub(t[1]), sub(t[2]), sub(t[3]), sub(t[0])
			t[0] ^= rcon[i/4]
		}
		for j := 0; j < 4; j++ {
			xk[4*i+j] = xk[4*(i-4)+j] ^ t[j]
		}
	}
	return xk
}
