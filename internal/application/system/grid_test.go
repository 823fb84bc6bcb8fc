package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/horde/internal/domain/entity"
)

func TestSpatialGrid_CellOf(t *testing.T) {
	g := NewSpatialGrid(64)

	tests := []struct {
		name string
		pos  entity.Vec2
		want Cell
	}{
		{"origin", entity.Vec2{X: 0, Y: 0}, Cell{0, 0}},
		{"inside first cell", entity.Vec2{X: 63.9, Y: 10}, Cell{0, 0}},
		{"cell boundary", entity.Vec2{X: 64, Y: 128}, Cell{1, 2}},
		{"negative floors down", entity.Vec2{X: -0.5, Y: -64}, Cell{-1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.CellOf(tt.pos))
		})
	}
}

func TestSpatialGrid_Rebuild(t *testing.T) {
	g := NewSpatialGrid(64)
	a := createTestEnemy(entity.Vec2{X: 10, Y: 10})
	b := createTestEnemy(entity.Vec2{X: 20, Y: 30})
	c := createTestEnemy(entity.Vec2{X: 200, Y: 10})

	g.Rebuild([]*entity.Enemy{a, b, c})

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.CellCount())
	assert.Equal(t, []*entity.Enemy{a, b}, g.Bucket(Cell{0, 0}))
	assert.Equal(t, []Cell{{0, 0}, {3, 0}}, g.Cells())

	t.Run("clears previous contents", func(t *testing.T) {
		g.Rebuild([]*entity.Enemy{c})
		assert.Equal(t, 1, g.Len())
		assert.Empty(t, g.Bucket(Cell{0, 0}))
	})

	t.Run("invalid cell size falls back", func(t *testing.T) {
		assert.Equal(t, 64.0, NewSpatialGrid(0).CellSize())
	})
}

func TestSpatialGrid_QueryNearbyIsSuperset(t *testing.T) {
	rng := testRNG()
	g := NewSpatialGrid(64)

	enemies := make([]*entity.Enemy, 300)
	for i := range enemies {
		enemies[i] = createTestEnemy(entity.Vec2{X: rng.Float64()*1000 - 200, Y: rng.Float64()*1000 - 200})
	}
	g.Rebuild(enemies)

	for q := 0; q < 200; q++ {
		pos := entity.Vec2{X: rng.Float64()*1000 - 200, Y: rng.Float64()*1000 - 200}
		radius := rng.Float64() * 150

		got := g.QueryNearby(pos, radius)

		seen := make(map[*entity.Enemy]bool, len(got))
		for _, e := range got {
			require.False(t, seen[e], "enemy returned twice")
			seen[e] = true
		}
		for _, e := range enemies {
			if e.Center().Dist(pos) <= radius {
				require.True(t, seen[e], "enemy at %v missing for query %v r=%.1f", e.Center(), pos, radius)
			}
		}
	}
}

func TestSpatialGrid_QueryNearby(t *testing.T) {
	g := NewSpatialGrid(64)
	near := createTestEnemy(entity.Vec2{X: 100, Y: 100})
	far := createTestEnemy(entity.Vec2{X: 1000, Y: 1000})
	g.Rebuild([]*entity.Enemy{near, far})

	t.Run("zero radius still scans one ring", func(t *testing.T) {
		got := g.QueryNearby(entity.Vec2{X: 60, Y: 60}, 0)
		assert.Equal(t, []*entity.Enemy{near}, got)
	})

	t.Run("negative radius treated as zero", func(t *testing.T) {
		got := g.QueryNearby(entity.Vec2{X: 100, Y: 100}, -10)
		assert.Equal(t, []*entity.Enemy{near}, got)
	})

	t.Run("appends into buffer", func(t *testing.T) {
		buf := make([]*entity.Enemy, 0, 4)
		buf = g.QueryNearbyInto(buf, entity.Vec2{X: 1000, Y: 1000}, 10)
		assert.Equal(t, []*entity.Enemy{far}, buf)
	})
}
