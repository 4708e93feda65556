package game

import (
	"math/rand/v2"
	"time"
)

//go:generate go tool mockgen -destination=mocks/mock_random.go -package=mocks stormfall/internal/game RandomSource

// RandomSource feeds every random decision in the engine: bot gates, wander
// headings, spawn positions and the loot table.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewRandomSource returns a PCG-backed source. A zero seed picks one from the clock.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between returns a value in [lo, hi).
func between(r RandomSource, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
