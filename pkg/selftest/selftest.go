// Package selftest runs AES-128 known-answer vectors through key expansion,
// encryption and decryption, and logs one event per vector.
package selftest

import (
	"errors"
	"fmt"
	"time"

	"aescore/internal/fn"
	"aescore/pkg/aes128"
	"aescore/pkg/keys"
	"aescore/pkg/log"
)

var ErrNoVectors = errors.New("selftest: no vectors")

const (
	SummarySuccess = "AES128 success"
	SummaryFailure = "AES128 failure"
)

type Result struct {
	Vector    Vector
	Got       aes128.Block
	Encrypted bool // ciphertext matched
	Decrypted bool // decrypting the expected ciphertext gave the plaintext back
}

func (r Result) OK() bool { return r.Encrypted && r.Decrypted }

type Report struct {
	Mode     aes128.SubstitutionMode
	Results  []Result
	Duration time.Duration
}

func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.OK() {
			return false
		}
	}
	return len(r.Results) > 0
}

func (r *Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Summary is the one-line verdict printed by the CLI.
func (r *Report) Summary() string {
	return fn.T(r.Passed(), SummarySuccess, SummaryFailure)
}

// Run checks every vector with the given substitution mode. An error means a
// vector could not be parsed; a wrong answer is reported in the Report.
func Run(mode aes128.SubstitutionMode, vectors []Vector) (*Report, error) {
	if len(vectors) == 0 {
		return nil, ErrNoVectors
	}
	start := time.Now()
	rep := &Report{Mode: mode, Results: make([]Result, 0, len(vectors))}
	for _, v := range vectors {
		res, err := check(mode, v)
		if err != nil {
			return nil, fmt.Errorf("selftest: vector %q: %w", v.Name, err)
		}
		rep.Results = append(rep.Results, res)
	}
	rep.Duration = time.Since(start)

	ev := log.Info()
	if !rep.Passed() {
		ev = log.Warn().Int("failed", len(rep.Failures()))
	}
	ev.Str("event", "selftest").
		Str("mode", mode.String()).
		Int("vectors", len(rep.Results)).
		Bool("ok", rep.Passed()).
		Dur("elapsed", rep.Duration).
		Msg(rep.Summary())
	return rep, nil
}

func check(mode aes128.SubstitutionMode, v Vector) (Result, error) {
	key, err := keys.ParseKey(v.Key)
	if err != nil {
		return Result{}, err
	}
	pt, err := keys.ParseBlock(v.Plaintext)
	if err != nil {
		return Result{}, err
	}
	want, err := keys.ParseBlock(v.Ciphertext)
	if err != nil {
		return Result{}, err
	}
	c, err := aes128.NewCipher(key[:], aes128.WithSubstitution(mode))
	if err != nil {
		return Result{}, err
	}

	res := Result{Vector: v, Got: c.EncryptBlock(pt)}
	res.Encrypted = res.Got == want
	res.Decrypted = c.DecryptBlock(want) == pt

	kcv := keys.CheckValue(c)
	ev := log.Debug()
	if !res.OK() {
		ev = log.Error().Str("want", keys.Format(want[:]))
	}
	ev.Str("event", "vector").
		Str("vector", v.Name).
		Str("mode", mode.String()).
		Str("kcv", keys.Format(kcv[:])).
		Str("got", keys.Format(res.Got[:])).
		Bool("ok", res.OK()).
		Msg("known-answer vector")
	return res, nil
}
