// Package snapshot renders a still image of the simulation for headless runs.
package snapshot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/horde/internal/domain/entity"
)

var (
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorWall      = color.RGBA{80, 80, 100, 255}
	colorProp      = color.RGBA{110, 90, 60, 255}
	colorPlayer    = color.RGBA{100, 200, 100, 255}
	colorChase     = color.RGBA{90, 180, 220, 255}
	colorRanged    = color.RGBA{200, 100, 100, 255}
	colorFireball  = color.RGBA{255, 140, 0, 255}
	colorEnemyShot = color.RGBA{255, 60, 160, 255}
	colorGem       = color.RGBA{120, 220, 255, 255}
	colorTuna      = color.RGBA{240, 200, 200, 255}
	colorText      = color.RGBA{230, 230, 230, 255}
	colorTextBG    = color.RGBA{0, 0, 0, 160}
)

// lineHeight matches basicfont.Face7x13
const lineHeight = 13

// Scene is everything one snapshot draws
type Scene struct {
	Map         *entity.TileMap
	Player      *entity.Player
	Enemies     []*entity.Enemy
	Items       []*entity.Item
	Projectiles []*entity.Projectile
	Lines       []string // text printed in the top-left corner
}

// Render draws s at scale pixels per world pixel
func Render(s Scene, scale float64) image.Image {
	if scale <= 0 {
		scale = 1
	}
	w := int(s.Map.WidthPx() * scale)
	h := int(s.Map.HeightPx() * scale)

	dc := gg.NewContext(w, h)
	dc.SetColor(colorBG)
	dc.Clear()
	dc.Scale(scale, scale)

	drawTiles(dc, s.Map)

	for _, it := range s.Items {
		c := colorGem
		if it.Kind == entity.ItemTuna {
			c = colorTuna
		}
		fillRect(dc, it.Rect(), c)
	}

	for _, e := range s.Enemies {
		c := colorChase
		if e.Behavior == entity.BehaviorRanged {
			c = colorRanged
		}
		fillRect(dc, e.Hitbox(), c)
	}

	for _, p := range s.Projectiles {
		c := colorFireball
		if p.TargetType == entity.TargetPlayer {
			c = colorEnemyShot
		}
		dc.SetColor(c)
		dc.DrawCircle(p.Pos.X, p.Pos.Y, p.Size/4)
		dc.Fill()
	}

	if s.Player != nil {
		fillRect(dc, s.Player.Hitbox(), colorPlayer)
	}

	dc.Identity()
	drawLines(dc, s.Lines)

	return dc.Image()
}

// SavePNG renders s and writes it to path
func SavePNG(path string, s Scene, scale float64) error {
	if s.Map == nil {
		return fmt.Errorf("snapshot %s: no map", path)
	}
	img := Render(s, scale)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", path, err)
	}
	return nil
}

func drawTiles(dc *gg.Context, m *entity.TileMap) {
	ts := float64(m.TileSize)
	for ty := 0; ty < m.Height; ty++ {
		for tx := 0; tx < m.Width; tx++ {
			var c color.Color
			switch m.Tiles[ty][tx].Type {
			case entity.TileWall:
				c = colorWall
			case entity.TileProp:
				c = colorProp
			default:
				continue
			}
			fillRect(dc, entity.Rect{X: float64(tx) * ts, Y: float64(ty) * ts, W: ts, H: ts}, c)
		}
	}
}

func drawLines(dc *gg.Context, lines []string) {
	if len(lines) == 0 {
		return
	}
	dc.SetFontFace(basicfont.Face7x13)

	maxW := 0.0
	for _, l := range lines {
		if w, _ := dc.MeasureString(l); w > maxW {
			maxW = w
		}
	}
	dc.SetColor(colorTextBG)
	dc.DrawRectangle(0, 0, maxW+8, float64(len(lines)*lineHeight)+8)
	dc.Fill()

	dc.SetColor(colorText)
	for i, l := range lines {
		dc.DrawString(l, 4, float64(4+(i+1)*lineHeight)-2)
	}
}

func fillRect(dc *gg.Context, r entity.Rect, c color.Color) {
	dc.SetColor(c)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Fill()
}
