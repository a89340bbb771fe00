package utils

import (
	"math/rand/v2"
)

// RandSource is the randomness used by drop and loadout rolls. Tests inject a
// seeded *rand.Rand.
type RandSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// DefaultSource draws from the process-wide generator.
var DefaultSource RandSource = globalSource{}

// NewSeededSource returns a deterministic source for tests and replays.
func NewSeededSource(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // Game logic randomness
}

// RollPercent reports whether a draw succeeds for a chance expressed in
// percent (0..100). Chances outside that range are clamped.
func RollPercent(src RandSource, chance float64) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return src.Float64()*100 < chance
}

// WeightedIndex picks one index with probability proportional to its weight
// by walking the cumulative distribution. Non-positive weights are never
// picked. Returns -1 when no weight is positive.
func WeightedIndex(src RandSource, weights []float64) int {
	total := 0.0
	last := -1
	for i, w := range weights {
		if w > 0 {
			total += w
			last = i
		}
	}
	if last < 0 {
		return -1
	}

	target := src.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	// Float rounding can leave target == total
	return last
}
