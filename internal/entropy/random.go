// Package entropy provides the random streams that drive the simulation.
// Every stream is seeded explicitly so a run can be replayed; when the caller
// has no seed, one is drawn from crypto/rand.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// Source is the randomness an agent step and a schedule need.
// *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform int in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
}

// New creates a deterministic stream from seed.
func New(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// Derive returns the stream for the i-th independent trial of a batch seeded
// with seed. Streams for different i do not share state.
func Derive(seed int64, i int) *mrand.Rand {
	return New(int64(mix(uint64(seed) + uint64(i+1)*0x9E3779B97F4A7C15)))
}

// Seed returns seed unchanged when it is non-zero, otherwise a fresh seed from
// crypto/rand. Zero means "unseeded" throughout the CLI.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return CryptoSeed()
}

// CryptoSeed returns a non-zero seed read from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to a fixed stream.
		return 1
	}
	s := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if s == 0 {
		return 1
	}
	return s
}

// mix is the splitmix64 finalizer.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
