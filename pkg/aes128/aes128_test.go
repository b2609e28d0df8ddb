package aes128

import (
	"crypto/aes"
	"fmt"
	"math/bits"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testString(op string, ka knownAnswer) string {
	return fmt.Sprintf("%s/%s", op, ka.name)
}

func TestEncryptKnownAnswers(t *testing.T) {
	for _, ka := range knownAnswers {
		t.Run(testString("Encrypt", ka), func(t *testing.T) {
			key, pt, ct := ka.decode()
			xk := ExpandKey(key)
			assert.Equal(t, ct, Encrypt(pt, &xk))
		})
	}
}

func TestDecryptKnownAnswers(t *testing.T) {
	for _, ka := range knownAnswers {
		t.Run(testString("Decrypt", ka), func(t *testing.T) {
			key, pt, ct := ka.decode()
			xk := ExpandKey(key)
			assert.Equal(t, pt, Decrypt(ct, &xk))
		})
	}
}

func TestSliceAPIKnownAnswers(t *testing.T) {
	for _, ka := range knownAnswers {
		t.Run(testString("EncryptBlock", ka), func(t *testing.T) {
			xk, err := ExpandKeyBytes(mustHex(ka.key))
			require.NoError(t, err)

			dst := make([]byte, BlockSize)
			require.NoError(t, EncryptBlock(dst, mustHex(ka.plaintext), xk[:]))
			assert.Equal(t, mustHex(ka.ciphertext), dst)

			require.NoError(t, DecryptBlock(dst, dst, xk[:]))
			assert.Equal(t, mustHex(ka.plaintext), dst)
		})
	}
}

// The testaes vector run end to end: expand once, encrypt once.
func TestHarnessScenario(t *testing.T) {
	key := []byte{0xE8, 0xE9, 0xEA, 0xEB, 0xED, 0xEE, 0xEF, 0xF0, 0xF2, 0xF3, 0xF4, 0xF5, 0xF7, 0xF8, 0xF9, 0xFA}
	in := []byte{0x01, 0x4B, 0xAF, 0x22, 0x78, 0xA6, 0x9D, 0x33, 0x1D, 0x51, 0x80, 0x10, 0x36, 0x43, 0xE9, 0x9A}
	out := []byte{0x67, 0x43, 0xC3, 0xD1, 0x51, 0x9A, 0xB4, 0xF2, 0xCD, 0x9A, 0x78, 0xAB, 0x09, 0xA5, 0x11, 0xBD}

	xk, err := ExpandKeyBytes(key)
	require.NoError(t, err)
	buffer := make([]byte, 16)
	require.NoError(t, EncryptBlock(buffer, in, xk[:]))
	assert.Equal(t, out, buffer)
}

func TestExpandKeyFIPS197(t *testing.T) {
	// FIPS-197 Appendix A.1
	xk := ExpandKey(Key(mustHex("2b7e151628aed2a6abf7158809cf4f3c")))
	rk1 := xk.RoundKey(1)
	rk10 := xk.RoundKey(10)
	assert.Equal(t, mustHex("a0fafe1788542cb123a339392a6c7605"), rk1[:])
	assert.Equal(t, mustHex("d014f9a8c9ee2589e13f0cc8b6630ca6"), rk10[:])

	// FIPS-197 Appendix C.1
	xk = ExpandKey(Key(mustHex("000102030405060708090a0b0c0d0e0f")))
	rk10 = xk.RoundKey(10)
	assert.Equal(t, mustHex("13111d7fe3944a17f307a78b4d2b30c5"), rk10[:])
}

func TestRoundKeyZeroIsCipherKey(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		var key Key
		fill(rng, key[:])
		xk := ExpandKey(key)
		require.Equal(t, key[:], xk[:KeySize])
		require.Equal(t, [BlockSize]byte(key), xk.RoundKey(0))
	}
}

func TestDeterminism(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 100; i++ {
		var key Key
		var pt Block
		fill(rng, key[:])
		fill(rng, pt[:])
		xk1, xk2 := ExpandKey(key), ExpandKey(key)
		require.Equal(t, xk1, xk2)
		require.Equal(t, Encrypt(pt, &xk1), Encrypt(pt, &xk2))
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 500; i++ {
		var key Key
		var pt Block
		fill(rng, key[:])
		fill(rng, pt[:])
		xk := ExpandKey(key)
		require.Equal(t, pt, Decrypt(Encrypt(pt, &xk), &xk))
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 500; i++ {
		var key Key
		var pt Block
		fill(rng, key[:])
		fill(rng, pt[:])

		ref, err := aes.NewCipher(key[:])
		require.NoError(t, err)
		want := make([]byte, BlockSize)
		ref.Encrypt(want, pt[:])

		xk := ExpandKey(key)
		got := Encrypt(pt, &xk)
		require.Equal(t, want, got[:], "key %x plaintext %x", key, pt)
	}
}

func TestAvalanche(t *testing.T) {
	const trials = 1000
	rng := rand.New(rand.NewPCG(9, 10))
	var key Key
	fill(rng, key[:])
	xk := ExpandKey(key)

	total := 0
	for i := 0; i < trials; i++ {
		var pt Block
		fill(rng, pt[:])
		flipped := pt
		bit := rng.IntN(BlockSize * 8)
		flipped[bit/8] ^= 1 << (bit % 8)
		total += hamming(Encrypt(pt, &xk), Encrypt(flipped, &xk))
	}
	mean := float64(total) / trials
	assert.InDelta(t, 64, mean, 4, "mean number of flipped output bits")
}

func TestKeySensitivity(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for i := 0; i < 200; i++ {
		var key Key
		var pt Block
		fill(rng, key[:])
		fill(rng, pt[:])
		other := key
		bit := rng.IntN(KeySize * 8)
		other[bit/8] ^= 1 << (bit % 8)

		xk, xo := ExpandKey(key), ExpandKey(other)
		require.NotEqual(t, xk.RoundKey(Rounds), xo.RoundKey(Rounds))

		c1, c2 := Encrypt(pt, &xk), Encrypt(pt, &xo)
		require.NotEqual(t, c1, c2)
		require.Greater(t, hamming(c1, c2), 20)
	}
}

func TestLengthValidation(t *testing.T) {
	xk := ExpandKey(Key{})
	block := make([]byte, BlockSize)
	dst := make([]byte, BlockSize)

	for _, n := range []int{0, 15, 17} {
		t.Run(fmt.Sprintf("key=%d", n), func(t *testing.T) {
			_, err := ExpandKeyBytes(make([]byte, n))
			assert.ErrorIs(t, err, ErrInvalidKeyLength)
			_, err = NewCipher(make([]byte, n))
			assert.ErrorIs(t, err, ErrInvalidKeyLength)
		})
		t.Run(fmt.Sprintf("block=%d", n), func(t *testing.T) {
			assert.ErrorIs(t, EncryptBlock(dst, make([]byte, n), xk[:]), ErrInvalidBlockLength)
			assert.ErrorIs(t, DecryptBlock(dst, make([]byte, n), xk[:]), ErrInvalidBlockLength)
		})
	}
	for _, n := range []int{0, 15, 17, 175, 177} {
		t.Run(fmt.Sprintf("expanded=%d", n), func(t *testing.T) {
			assert.ErrorIs(t, EncryptBlock(dst, block, make([]byte, n)), ErrInvalidExpandedKeyLength)
			assert.ErrorIs(t, DecryptBlock(dst, block, make([]byte, n)), ErrInvalidExpandedKeyLength)
		})
	}

	err := EncryptBlock(make([]byte, 15), block, xk[:])
	assert.ErrorIs(t, err, ErrInvalidBlockLength)
	assert.EqualError(t, lengthError(ErrInvalidKeyLength, 15, 16), "aes128: invalid key length: got 15, want 16")
}

func TestRejectedCallLeavesOutputUntouched(t *testing.T) {
	dst := []byte("sixteen byte buf")
	orig := append([]byte(nil), dst...)
	require.Error(t, EncryptBlock(dst, make([]byte, BlockSize), make([]byte, 175)))
	assert.Equal(t, orig, dst)
}

func TestSBox(t *testing.T) {
	assert.Equal(t, byte(0x63), SubByte(0x00))
	assert.Equal(t, byte(0x7c), SubByte(0x01))
	assert.Equal(t, byte(0xed), SubByte(0x53))
	assert.Equal(t, byte(0x16), SubByte(0xff))
	assert.Equal(t, byte(0x00), InvSubByte(0x63))

	var seen [256]bool
	for i := 0; i < 256; i++ {
		s := SubByte(byte(i))
		require.False(t, seen[s], "S-box maps two inputs to %#02x", s)
		seen[s] = true
		require.Equal(t, byte(i), InvSubByte(s))
	}
}

func TestRoundConstants(t *testing.T) {
	want := [Rounds + 1]byte{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}
	assert.Equal(t, want, rcon)
}

func TestShiftRows(t *testing.T) {
	var s Block
	for i := range s {
		s[i] = byte(i)
	}
	shiftRows(&s)
	assert.Equal(t, Block{0, 5, 10, 15, 4, 9, 14, 3, 8, 13, 2, 7, 12, 1, 6, 11}, s)
	invShiftRows(&s)
	for i := range s {
		require.Equal(t, byte(i), s[i])
	}
}

func TestMixColumns(t *testing.T) {
	s := Block{
		0xdb, 0x13, 0x53, 0x45,
		0xf2, 0x0a, 0x22, 0x5c,
		0x01, 0x01, 0x01, 0x01,
		0xc6, 0xc6, 0xc6, 0xc6,
	}
	orig := s
	mixColumns(&s)
	assert.Equal(t, Block{
		0x8e, 0x4d, 0xa1, 0xbc,
		0x9f, 0xdc, 0x58, 0x9d,
		0x01, 0x01, 0x01, 0x01,
		0xc6, 0xc6, 0xc6, 0xc6,
	}, s)
	invMixColumns(&s)
	assert.Equal(t, orig, s)
}

func TestConcurrentUseOfExpandedKey(t *testing.T) {
	key, pt, ct := knownAnswers[0].decode()
	xk := ExpandKey(key)

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if got := Encrypt(pt, &xk); got != ct {
					errs <- fmt.Sprintf("got %x", got)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func fill(rng *rand.Rand, b []byte) {
	for i := range b {
		b[i] = byte(rng.Uint32())
	}
}

func hamming(a, b Block) int {
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n
}

func BenchmarkExpandKey(b *testing.B) {
	key, _, _ := knownAnswers[0].decode()
	for i := 0; i < b.N; i++ {
		_ = ExpandKey(key)
	}
}

func BenchmarkEncrypt(b *testing.B) {
	key, pt, _ := knownAnswers[0].decode()
	xk := ExpandKey(key)
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pt = Encrypt(pt, &xk)
	}
}

func BenchmarkDecrypt(b *testing.B) {
	key, _, ct := knownAnswers[0].decode()
	xk := ExpandKey(key)
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ct = Decrypt(ct, &xk)
	}
}

func TestAddRoundKey(t *testing.T) {
	xk := ExpandKey(Key(mustHex("000102030405060708090a0b0c0d0e0f")))
	s := Block(mustHex("00112233445566778899aabbccddeeff"))
	orig := s
	addRoundKey(&s, &xk, 0)
	assert.Equal(t, Block(mustHex("00102030405060708090a0b0c0d0e0f0")), s)
	addRoundKey(&s, &xk, 0)
	assert.Equal(t, orig, s)
}
