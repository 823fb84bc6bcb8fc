package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedIndex(t *testing.T) {
	t.Run("nothing to draw", func(t *testing.T) {
		rng := testRNG()
		assert.Equal(t, -1, WeightedIndex(rng, nil))
		assert.Equal(t, -1, WeightedIndex(rng, []float64{0, -2}))
	})

	t.Run("skips zero weights", func(t *testing.T) {
		rng := testRNG()
		for i := 0; i < 100; i++ {
			assert.Equal(t, 1, WeightedIndex(rng, []float64{0, 3, 0}))
		}
	})

	t.Run("follows the weights", func(t *testing.T) {
		rng := testRNG()
		counts := make([]int, 2)
		const n = 20000
		for i := 0; i < n; i++ {
			counts[WeightedIndex(rng, []float64{0.9, 0.1})]++
		}
		assert.InDelta(t, 0.9, float64(counts[0])/n, 0.02)
		assert.InDelta(t, 0.1, float64(counts[1])/n, 0.02)
	})
}
