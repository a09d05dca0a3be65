// Package rng provides the injectable random source used by every
// probability branch in the encounter engine. Callers pick a crypto-backed
// source for live play or a seeded source for reproducible simulations.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"math/big"
	mrand "math/rand"
)

// Source is the uniform random generator consumed by the engine.
// Implementations must return Intn values in [0, n) and Float64 values
// in [0, 1).
type Source interface {
	Intn(n int) int
	Float64() float64
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are cryptographically secure and uniformly
// distributed in their documented ranges.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n); every value
// returned by Float64 is in [0, 1).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Float64 returns a cryptographically secure random float64 in [0, 1).
func (c *cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	// 53 bits of mantissa, same construction as math/rand.Float64.
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// seededSource implements Source using a deterministic math/rand stream.
// It is not safe for concurrent use; the engine is single-threaded per
// session, which matches.
type seededSource struct {
	src *mrand.Rand
}

// NewSeededSource returns a deterministic Source for the given seed.
// Two sources built from the same seed produce identical draw sequences,
// which is what golden-value tests and the simulator rely on.
func NewSeededSource(seed int64) Source {
	return &seededSource{src: mrand.New(mrand.NewSource(seed))}
}

// Intn returns a deterministic random int in [0, n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" if n <= 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return s.src.Intn(n)
}

// Float64 returns a deterministic random float64 in [0, 1).
func (s *seededSource) Float64() float64 {
	return s.src.Float64()
}

// Chance reports whether a draw from src lands under probability p.
//
// Precondition: src must be non-nil. p <= 0 always returns false; p >= 1
// always returns true.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// Fixed is a Source that replays predetermined values, for tests that pin
// a formula to an exact outcome. Intn returns min(Ints[i], n-1) for the
// i-th call and wraps around; Float64 behaves likewise over Floats.
type Fixed struct {
	Ints   []int
	Floats []float64
	iPos   int
	fPos   int
}

// Intn returns the next scripted int clamped to [0, n).
func (f *Fixed) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	if len(f.Ints) == 0 {
		return 0
	}
	v := f.Ints[f.iPos%len(f.Ints)]
	f.iPos++
	if v >= n {
		return n - 1
	}
	if v < 0 {
		return 0
	}
	return v
}

// Float64 returns the next scripted float clamped to [0, 1).
func (f *Fixed) Float64() float64 {
	if len(f.Floats) == 0 {
		return 0
	}
	v := f.Floats[f.fPos%len(f.Floats)]
	f.fPos++
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}
