package snapshot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/horde/internal/domain/entity"
)

func createTestScene() Scene {
	m := entity.NewTileMap(10, 8, 16)
	for x := 0; x < m.Width; x++ {
		m.SetSolid(x, 0)
	}
	return Scene{
		Map:    m,
		Player: entity.NewPlayer(72, 56, 16, 16, 150, 100),
		Enemies: []*entity.Enemy{
			{ID: 1, Pos: entity.Vec2{X: 20, Y: 40}, Width: 16, Height: 16, HitboxWidth: 16, HitboxHeight: 16},
		},
		Items:       []*entity.Item{entity.NewItem(2, entity.Vec2{X: 100, Y: 100}, entity.ItemTuna, 8)},
		Projectiles: []*entity.Projectile{entity.NewProjectile(entity.ProjectileSpec{Origin: entity.Vec2{X: 80, Y: 64}, Target: entity.Vec2{X: 120, Y: 64}, Speed: 100, Size: 16})},
		Lines:       []string{"frame 1", "enemies 1"},
	}
}

func TestRender_Size(t *testing.T) {
	s := createTestScene()

	img := Render(s, 2)

	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestRender_DrawsWalls(t *testing.T) {
	s := createTestScene()
	s.Lines = nil

	img := Render(s, 1)

	r, g, b, _ := img.At(150, 8).RGBA()
	assert.Equal(t, uint32(colorWall.R), r>>8)
	assert.Equal(t, uint32(colorWall.G), g>>8)
	assert.Equal(t, uint32(colorWall.B), b>>8)
}

func TestRender_NonPositiveScale(t *testing.T) {
	img := Render(createTestScene(), 0)

	assert.Equal(t, 160, img.Bounds().Dx())
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.png")

	require.NoError(t, SavePNG(path, createTestScene(), 1))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestSavePNG_NoMap(t *testing.T) {
	err := SavePNG(filepath.Join(t.TempDir(), "x.png"), Scene{}, 1)

	assert.Error(t, err)
}
