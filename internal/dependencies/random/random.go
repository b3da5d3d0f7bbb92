package random

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mrand "math/rand/v2"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Uint64 returns a random 64-bit value
	Uint64() uint64
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fall back to 0 on error (should never happen with crypto/rand)
		return 0
	}
	return int(result.Int64())
}

// Uint64 returns a cryptographically random 64-bit value
func (r *CryptoRandom) Uint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// SeededRandom is a deterministic source. The same seed always produces the
// same sequence, so a ship layout can be reproduced from its seed.
type SeededRandom struct {
	rnd *mrand.Rand
}

// NewSeeded creates a SeededRandom from a 64-bit seed
func NewSeeded(seed uint64) *SeededRandom {
	return &SeededRandom{rnd: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns a deterministic int in [0, n)
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rnd.IntN(n)
}

// Uint64 returns a deterministic 64-bit value
func (r *SeededRandom) Uint64() uint64 {
	return r.rnd.Uint64()
}
