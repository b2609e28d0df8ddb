package aes128

import "aescore/pkg/gf"

// The state is indexed as s[row+4*col].

func addRoundKey(s *Block, xk *ExpandedKey, r int) {
	k := xk[r*BlockSize : (r+1)*BlockSize]
	for i := range s {
		s[i] = gf.Add(s[i], k[i])
	}
}

func subBytes(s *Block, sub func(byte) byte) {
	for i := range s {
		s[i] = sub(s[i])
	}
}

// shiftRows rotates row r left by r columns.
func shiftRows(s *Block) {
	t := *s
	for r := 1; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r+4*c] = t[r+4*((c+r)%4)]
		}
	}
}

func invShiftRows(s *Block) {
	t := *s
	for r := 1; r < 4; r++ {
		for c := 0; c < 4; c++ {
			s[r+4*((c+r)%4)] = t[r+4*c]
		}
	}
}

// mixColumns multiplies every column by the circulant matrix (2 3 1 1).
func mixColumns(s *Block) {
	for c := 0; c < 4; c++ {
		col := s[4*c : 4*c+4]
		a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
		col[0] = gf.Xtime(a0) ^ gf.Xtime(a1) ^ a1 ^ a2 ^ a3
		col[1] = a0 ^ gf.Xtime(a1) ^ gf.Xtime(a2) ^ a2 ^ a3
		col[2] = a0 ^ a1 ^ gf.Xtime(a2) ^ gf.Xtime(a3) ^ a3
		col[3] = gf.Xtime(a0) ^ a0 ^ a1 ^ a2 ^ gf.Xtime(a3)
	}
}

// invMixColumns multiplies every column by the circulant matrix (14 11 13 9).
func invMixColumns(s *Block) {
	for c := 0; c < 4; c++ {
		col := s[4*c : 4*c+4]
		a0, a1, a2, a3 := col[0], col[1], col[2], col[3]
		col[0] = gf.Mul(a0, 0x0e) ^ gf.Mul(a1, 0x0b) ^ gf.Mul(a2, 0x0d) ^ gf.Mul(a3, 0x09)
		col[1] = gf.Mul(a0, 0x09) ^ gf.Mul(a1, 0x0e) ^ gf.Mul(a2, 0x0b) ^ gf.Mul(a3, 0x0d)
		col[2] = gf.Mul(a0, 0x0d) ^ gf.Mul(a1, 0x09) ^ gf.Mul(a2, 0x0e) ^ gf.Mul(a3, 0x0b)
		col[3] = gf.Mul(a0, 0x0b) ^ gf.Mul(a1, 0x0d) ^ gf.Mul(a2, 0x09) ^ gf.Mul(a3, 0x0e)
	}
}
