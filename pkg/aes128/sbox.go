package aes128

import "aescore/pkg/gf"

// Substitution tables and round constants. They are filled once by init and
// only read afterwards.
var (
	sbox    [256]byte
	invSbox [256]byte

	// rcon[i] is x^(i-1) in GF(2^8); rcon[0] is unused.
	rcon [Rounds + 1]byte
)

func init() {
	for i := 0; i < 256; i++ {
		s := gf.Affine(gf.Inverse(byte(i)))
		sbox[i] = s
		invSbox[s] = byte(i)
	}
	rcon[1] = 0x01
	for i := 2; i <= Rounds; i++ {
		rcon[i] = gf.Xtime(rcon[i-1])
	}
}

func subByteTable(b byte) byte    { return sbox[b] }
func invSubByteTable(b byte) byte { return invSbox[b] }

// SubByte returns the S-box image of b.
func SubByte(b byte) byte { return sbox[b] }

// InvSubByte returns the inverse S-box image of b.
func InvSubByte(b byte) byte { return invSbox[b] }
