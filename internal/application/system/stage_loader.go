package system

import (
	"github.com/younwookim/horde/internal/domain/entity"
	"github.com/younwookim/horde/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a TileMap
func LoadStage(cfg *config.StageConfig) *entity.TileMap {
	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileHeight := len(cfg.Layers.Collision)

	m := entity.NewTileMap(tileWidth, tileHeight, cfg.Size.TileSize)
	for y, row := range cfg.Layers.Collision {
		for x, char := range row {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			var tileType entity.TileType
			switch mapping.Type {
			case "wall":
				tileType = entity.TileWall
			case "prop":
				tileType = entity.TileProp
			default:
				tileType = entity.TileEmpty
			}
			m.Tiles[y][x] = entity.Tile{Type: tileType, Solid: mapping.Solid}
		}
	}

	m.SpawnX = cfg.PlayerSpawn.X
	m.SpawnY = cfg.PlayerSpawn.Y
	return m
}
