package aes128

import (
	"fmt"
	"strings"

	"aescore/pkg/gf"
)

// SubstitutionMode selects how SubBytes is computed.
type SubstitutionMode int

const (
	// SubstitutionTable indexes the precomputed S-box. It is the fastest
	// mode, but the memory access pattern depends on the state.
	SubstitutionTable SubstitutionMode = iota
	// SubstitutionConstantTime computes every S-box output arithmetically
	// (field inverse followed by the affine map) without secret-dependent
	// branches or table indices.
	SubstitutionConstantTime
)

func (m SubstitutionMode) String() string {
	switch m {
	case SubstitutionTable:
		return "table"
	case SubstitutionConstantTime:
		return "constant-time"
	default:
		return fmt.Sprintf("SubstitutionMode(%d)", int(m))
	}
}

// ParseSubstitutionMode maps "table" or "constant-time" (also "ct") to a
// SubstitutionMode. The empty string selects SubstitutionTable.
func ParseSubstitutionMode(s string) (SubstitutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return SubstitutionTable, nil
	case "constant-time", "constant_time", "ct":
		return SubstitutionConstantTime, nil
	default:
		return 0, fmt.Errorf("aes128: unknown substitution mode %q", s)
	}
}

func subByteCT(b byte) byte    { return gf.Affine(gf.Inverse(b)) }
func invSubByteCT(b byte) byte { return gf.Inverse(gf.InvAffine(b)) }

// substitution is the pair of byte maps used by one mode.
type substitution struct {
	sub, inv func(byte) byte
}

func (m SubstitutionMode) substitution() substitution {
	if m == SubstitutionConstantTime {
		return substitution{sub: subByteCT, inv: invSubByteCT}
	}
	return substitution{sub: subByteTable, inv: invSubByteTable}
}
