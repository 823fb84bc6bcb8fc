package entity

import "math"

// EntityID is a unique identifier for an entity
type EntityID uint32

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileProp
)

// Tile represents a single tile in the map
type Tile struct {
	Type  TileType
	Solid bool
}

// StaticCollider answers whether a world-pixel rect touches static geometry.
// The simulation only ever reads it.
type StaticCollider interface {
	Collides(r Rect) bool
}

// CollideFunc adapts a plain function to StaticCollider
type CollideFunc func(r Rect) bool

// Collides implements StaticCollider
func (f CollideFunc) Collides(r Rect) bool { return f(r) }

// TileMap is the bounded tile world backing static collision
type TileMap struct {
	Width    int // tiles
	Height   int // tiles
	TileSize int // pixels
	Tiles    [][]Tile
	SpawnX   int // player spawn, pixels
	SpawnY   int
}

// NewTileMap creates an empty (all walkable) map
func NewTileMap(width, height, tileSize int) *TileMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	return &TileMap{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Tiles:    tiles,
		SpawnX:   width * tileSize / 2,
		SpawnY:   height * tileSize / 2,
	}
}

// GetTile returns the tile at the given tile coordinates.
// Anything outside the map is a solid wall.
func (m *TileMap) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= m.Width || ty < 0 || ty >= m.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return m.Tiles[ty][tx]
}

// SetSolid marks the tile at tile coordinates as a solid wall
func (m *TileMap) SetSolid(tx, ty int) {
	if tx < 0 || tx >= m.Width || ty < 0 || ty >= m.Height {
		return
	}
	m.Tiles[ty][tx] = Tile{Type: TileWall, Solid: true}
}

// IsSolidAt checks if the tile at pixel coordinates is solid
func (m *TileMap) IsSolidAt(px, py float64) bool {
	tx := int(math.Floor(px / float64(m.TileSize)))
	ty := int(math.Floor(py / float64(m.TileSize)))
	return m.GetTile(tx, ty).Solid
}

// WidthPx returns the map width in pixels
func (m *TileMap) WidthPx() float64 { return float64(m.Width * m.TileSize) }

// HeightPx returns the map height in pixels
func (m *TileMap) HeightPx() float64 { return float64(m.Height * m.TileSize) }

// Collides reports whether r overlaps any solid tile or leaves the map
func (m *TileMap) Collides(r Rect) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	ts := float64(m.TileSize)
	x1 := int(math.Floor(r.X / ts))
	y1 := int(math.Floor(r.Y / ts))
	// Right/bottom edges are exclusive
	x2 := int(math.Ceil(r.Right()/ts)) - 1
	y2 := int(math.Ceil(r.Bottom()/ts)) - 1

	for ty := y1; ty <= y2; ty++ {
		for tx := x1; tx <= x2; tx++ {
			if m.GetTile(tx, ty).Solid {
				return true
			}
		}
	}
	return false
}
