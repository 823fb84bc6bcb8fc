package system

import "math/rand"

// WeightedIndex draws an index from weights with probability proportional to
// its weight. Negative weights count as zero. Returns -1 if nothing can be drawn.
func WeightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := rng.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
		last = i
	}
	// Rounding left a sliver past the final bucket
	return last
}
