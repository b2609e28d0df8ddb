// Package gf implements arithmetic in GF(2^8) as used by AES, with the
// reduction polynomial x^8 + x^4 + x^3 + x + 1 (0x11B).
//
// Every function runs a fixed number of iterations and selects with masks
// instead of branches, so the timing does not depend on the operands.
package gf

import "math/bits"

// Poly is the reduction polynomial without its implicit x^8 term.
const Poly = 0x1B

// Add returns a + b, which in a field of characteristic 2 is XOR.
func Add(a, b byte) byte {
	return a ^ b
}

// Xtime multiplies a by x (0x02).
func Xtime(a byte) byte {
	return a<<1 ^ (-(a >> 7) & Poly)
}

// Mul returns the field product a·b using shift-and-reduce.
func Mul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		p ^= -(b & 1) & a
		a = Xtime(a)
		b >>= 1
	}
	return p
}

// Pow returns a^n by square-and-multiply over all eight bits of n.
func Pow(a byte, n uint8) byte {
	r := byte(1)
	for i := 7; i >= 0; i-- {
		r = Mul(r, r)
		m := Mul(r, a)
		mask := -((n >> uint(i)) & 1)
		r = m&mask | r&^mask
	}
	return r
}

// Inverse returns the multiplicative inverse of a, computed as a^254.
// Zero has no inverse; Inverse(0) is 0, which is the convention the
// S-box is defined with.
func Inverse(a byte) byte {
	return Pow(a, 254)
}

// Affine applies the AES affine transformation to b.
func Affine(b byte) byte {
	return b ^ bits.RotateLeft8(b, 1) ^ bits.RotateLeft8(b, 2) ^
		bits.RotateLeft8(b, 3) ^ bits.RotateLeft8(b, 4) ^ 0x63
}

// InvAffine undoes Affine.
func InvAffine(b byte) byte {
	return bits.RotateLeft8(b, 1) ^ bits.RotateLeft8(b, 3) ^ bits.RotateLeft8(b, 6) ^ 0x05
}
