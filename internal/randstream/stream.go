// Package randstream derives deterministic per-account random streams.
//
// Every account gets its own PCG stream keyed by the dataset seed plus the
// account identifier, so regenerating with the same seed reproduces each
// account bit-for-bit and the order accounts are processed in never matters.
package randstream

import (
	"io"
	"math/rand/v2"
)

// golden-ratio increment, decorrelates adjacent account ids
const mix = 0x9E3779B97F4A7C15

// ForAccount returns the random stream owned by a single account.
func ForAccount(seed uint64, accountID int64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(accountID)*mix))
}

// Gaussian samples 1 + N(0, sigma), the multiplicative noise shape used by
// both the signal composer and the decomposer.
func Gaussian(r *rand.Rand, sigma float64) float64 {
	return 1 + r.NormFloat64()*sigma
}

// Reader adapts a stream to io.Reader for consumers that take entropy as a
// byte source (ULID generation).
func Reader(r *rand.Rand) io.Reader { return reader{r} }

type reader struct{ r *rand.Rand }

func (rd reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(rd.r.Uint64())
	}
	return len(p), nil
}
