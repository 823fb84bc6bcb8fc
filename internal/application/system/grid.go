package system

import (
	"math"
	"sort"

	"github.com/younwookim/horde/internal/domain/entity"
)

// Cell addresses one bucket of the spatial grid
type Cell struct {
	X, Y int
}

// SpatialGrid is a uniform spatial hash of enemies keyed by the cell of
// their center. It is rebuilt from scratch every frame.
type SpatialGrid struct {
	cellSize float64
	cells    map[Cell][]*entity.Enemy
	count    int
}

// NewSpatialGrid creates an empty grid. Non-positive sizes fall back to 64.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[Cell][]*entity.Enemy),
	}
}

// CellSize returns the edge length of a cell in pixels
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// CellOf returns the cell containing pos
func (g *SpatialGrid) CellOf(pos entity.Vec2) Cell {
	return Cell{
		X: int(math.Floor(pos.X / g.cellSize)),
		Y: int(math.Floor(pos.Y / g.cellSize)),
	}
}

// Rebuild clears the grid and inserts every enemy under its center cell
func (g *SpatialGrid) Rebuild(enemies []*entity.Enemy) {
	clear(g.cells)
	for _, e := range enemies {
		c := g.CellOf(e.Center())
		g.cells[c] = append(g.cells[c], e)
	}
	g.count = len(enemies)
}

// QueryNearby returns every enemy whose cell lies within ceil(radius/cell)+1
// rings of the cell containing pos. The result is a superset of the enemies
// within radius; callers filter by exact distance.
func (g *SpatialGrid) QueryNearby(pos entity.Vec2, radius float64) []*entity.Enemy {
	return g.QueryNearbyInto(nil, pos, radius)
}

// QueryNearbyInto is QueryNearby appending into dst
func (g *SpatialGrid) QueryNearbyInto(dst []*entity.Enemy, pos entity.Vec2, radius float64) []*entity.Enemy {
	if radius < 0 || math.IsNaN(radius) {
		radius = 0
	}
	rings := int(math.Ceil(radius/g.cellSize)) + 1
	center := g.CellOf(pos)

	// Each enemy lives in exactly one bucket, so the union has no duplicates
	for dy := -rings; dy <= rings; dy++ {
		for dx := -rings; dx <= rings; dx++ {
			dst = append(dst, g.cells[Cell{center.X + dx, center.Y + dy}]...)
		}
	}
	return dst
}

// Bucket returns the enemies stored under c
func (g *SpatialGrid) Bucket(c Cell) []*entity.Enemy {
	return g.cells[c]
}

// Cells returns the occupied cells in row-major order
func (g *SpatialGrid) Cells() []Cell {
	cells := make([]Cell, 0, len(g.cells))
	for c := range g.cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// CellCount returns the number of occupied cells
func (g *SpatialGrid) CellCount() int {
	return len(g.cells)
}

// Len returns the number of enemies inserted by the last Rebuild
func (g *SpatialGrid) Len() int {
	return g.count
}
