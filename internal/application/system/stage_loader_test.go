package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/horde/internal/domain/entity"
	"github.com/younwookim/horde/internal/infrastructure/config"
)

func TestLoadStage(t *testing.T) {
	t.Run("loads basic stage", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{
				Width:    48,
				Height:   48,
				TileSize: 16,
			},
			PlayerSpawn: config.PositionConfig{
				X: 16,
				Y: 16,
			},
			Layers: config.LayersConfig{
				Collision: []string{
					"###",
					"#.#",
					"###",
				},
			},
			TileMapping: map[string]config.TileMappingConfig{
				"#": {Type: "wall", Solid: true},
				".": {Type: "empty", Solid: false},
			},
		}

		m := LoadStage(cfg)

		require.NotNil(t, m)
		assert.Equal(t, 3, m.Width)
		assert.Equal(t, 3, m.Height)
		assert.Equal(t, 16, m.TileSize)
		assert.Equal(t, 16, m.SpawnX)
		assert.Equal(t, 16, m.SpawnY)
		assert.True(t, m.GetTile(0, 0).Solid)
		assert.False(t, m.GetTile(1, 1).Solid)
		assert.True(t, m.Collides(entity.Rect{X: 10, Y: 20, W: 8, H: 8}))
		assert.False(t, m.Collides(entity.Rect{X: 18, Y: 18, W: 12, H: 12}))
	})

	t.Run("maps prop tiles", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size:   config.StageSizeConfig{Width: 16, Height: 16, TileSize: 16},
			Layers: config.LayersConfig{Collision: []string{"o"}},
			TileMapping: map[string]config.TileMappingConfig{
				"o": {Type: "prop", Solid: true},
			},
		}

		tile := LoadStage(cfg).GetTile(0, 0)

		assert.Equal(t, entity.TileProp, tile.Type)
		assert.True(t, tile.Solid)
	})

	t.Run("handles unknown tile mapping", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size:        config.StageSizeConfig{Width: 16, Height: 16, TileSize: 16},
			Layers:      config.LayersConfig{Collision: []string{"?"}},
			TileMapping: map[string]config.TileMappingConfig{},
		}

		tile := LoadStage(cfg).GetTile(0, 0)

		assert.Equal(t, entity.TileEmpty, tile.Type)
		assert.False(t, tile.Solid)
	})

	t.Run("truncates rows wider than the stage", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size:   config.StageSizeConfig{Width: 32, Height: 16, TileSize: 16},
			Layers: config.LayersConfig{Collision: []string{".##"}},
			TileMapping: map[string]config.TileMappingConfig{
				"#": {Type: "wall", Solid: true},
			},
		}

		m := LoadStage(cfg)

		assert.Equal(t, 2, m.Width)
		assert.Len(t, m.Tiles[0], 2)
	})
}
