package aes128

import (
	"encoding/hex"
	"strings"
)

type knownAnswer struct {
	name       string
	key        string
	plaintext  string
	ciphertext string
}

var knownAnswers = []knownAnswer{
	{
		name:       "FIPS-197/C.1",
		key:        "000102030405060708090a0b0c0d0e0f",
		plaintext:  "00112233445566778899aabbccddeeff",
		ciphertext: "69c4e0d86a7b0430d8cdb78070b4c55a",
	},
	{
		name:       "FIPS-197/B",
		key:        "2b7e151628aed2a6abf7158809cf4f3c",
		plaintext:  "3243f6a8885a308d313198a2e0370734",
		ciphertext: "3925841d02dc09fbdc118597196a0b32",
	},
	{
		name:       "testaes",
		key:        "E8 E9 EA EB ED EE EF F0 F2 F3 F4 F5 F7 F8 F9 FA",
		plaintext:  "01 4B AF 22 78 A6 9D 33 1D 51 80 10 36 43 E9 9A",
		ciphertext: "67 43 C3 D1 51 9A B4 F2 CD 9A 78 AB 09 A5 11 BD",
	},
	{
		name:       "SP800-38A/F.1.1#1",
		key:        "2b7e151628aed2a6abf7158809cf4f3c",
		plaintext:  "6bc1bee22e409f96e93d7e117393172a",
		ciphertext: "3ad77bb40d7a3660a89ecaf32466ef97",
	},
	{
		name:       "SP800-38A/F.1.1#2",
		key:        "2b7e151628aed2a6abf7158809cf4f3c",
		plaintext:  "ae2d8a571e03ac9c9eb76fac45af8e51",
		ciphertext: "f5d3d58503b9699de785895a96fdbaaf",
	},
	{
		name:       "SP800-38A/F.1.1#3",
		key:        "2b7e151628aed2a6abf7158809cf4f3c",
		plaintext:  "30c81c46a35ce411e5fbc1191a0a52ef",
		ciphertext: "43b1cd7f598ece23881b00e3ed030688",
	},
	{
		name:       "SP800-38A/F.1.1#4",
		key:        "2b7e151628aed2a6abf7158809cf4f3c",
		plaintext:  "f69f2445df4f9b17ad2b417be66c3710",
		ciphertext: "7b0c785e27e8ad3f8223207104725dd4",
	},
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		panic(err)
	}
	return b
}

func (ka knownAnswer) decode() (Key, Block, Block) {
	return Key(mustHex(ka.key)), Block(mustHex(ka.plaintext)), Block(mustHex(ka.ciphertext))
}
