package duel

import (
	"math/rand"

	"github.com/google/uuid"
)

// Rand is the random source used for terrain, wind and shot sampling.
// *rand.Rand satisfies it; tests may script their own.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed)) // #nosec G404
}

// randReader adapts a Rand to io.Reader so IDs follow the duel's seed.
type randReader struct{ rng Rand }

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Float64() * 256)
	}
	return len(p), nil
}

// newRoundID draws a version 4 UUID from rng.
func newRoundID(rng Rand) uuid.UUID {
	return uuid.Must(uuid.NewRandomFromReader(randReader{rng}))
}
