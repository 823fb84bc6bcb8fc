// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/horde/internal/application/replay"
	"github.com/younwookim/horde/internal/application/scene"
	"github.com/younwookim/horde/internal/application/session"
	"github.com/younwookim/horde/internal/application/state"
	"github.com/younwookim/horde/internal/application/system"
	"github.com/younwookim/horde/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorWall       = color.RGBA{80, 80, 100, 255}
	colorProp       = color.RGBA{110, 90, 60, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorGodMode    = color.RGBA{255, 255, 255, 200}
	colorSlime      = color.RGBA{90, 180, 220, 255}
	colorRanged     = color.RGBA{200, 100, 100, 255}
	colorFireball   = color.RGBA{255, 140, 0, 255}
	colorEnemyShot  = color.RGBA{255, 60, 160, 255}
	colorGem        = color.RGBA{120, 220, 255, 255}
	colorTuna       = color.RGBA{240, 200, 200, 255}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
	colorExpFG      = color.RGBA{120, 160, 255, 255}
	colorText       = color.RGBA{230, 230, 230, 255}
	colorGrid       = color.RGBA{255, 255, 255, 24}
	colorPaused     = color.RGBA{0, 0, 0, 128}
	colorGameOver   = color.RGBA{100, 0, 0, 180}
	colorReplayDone = color.RGBA{0, 0, 60, 160}
)

// Options configures a Playing scene
type Options struct {
	Debug      bool             // start with the diagnostics overlay on
	RecordPath string           // record input to this file; empty disables
	StageName  string           // stored in recordings
	Replay     *replay.Replayer // drive the session from a recording instead of the keyboard
}

// Playing is the main gameplay scene
type Playing struct {
	sess     *session.Session
	input    *system.InputSystem
	state    state.GameState
	screenW  int
	screenH  int
	zoom     float64
	dt       float64
	debug    bool
	faults   int
	face     *text.GoXFace
	opts     Options
	recorder *replay.Recorder
	replayer *replay.Replayer
}

// New creates a new Playing scene around sess
func New(sess *session.Session, opts Options) *Playing {
	display := sess.Config().Display
	zoom := display.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	framerate := display.Framerate
	if framerate <= 0 {
		framerate = 60
	}

	p := &Playing{
		sess:     sess,
		input:    system.NewInputSystem(),
		state:    state.StatePlaying,
		screenW:  display.ScreenWidth,
		screenH:  display.ScreenHeight,
		zoom:     zoom,
		dt:       1.0 / float64(framerate),
		debug:    opts.Debug,
		face:     text.NewGoXFace(basicfont.Face7x13),
		opts:     opts,
		replayer: opts.Replay,
	}
	if p.replayer != nil && p.replayer.DT() > 0 {
		p.dt = p.replayer.DT()
	}

	if opts.RecordPath != "" && p.replayer == nil {
		p.recorder = replay.NewRecorder(sess.Seed(), opts.StageName, p.dt)
		log.Printf("Recording enabled: %s (seed: %d)", opts.RecordPath, sess.Seed())
	}

	return p
}

// Update advances the session by one fixed step
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if p.input.DebugPressed() {
		p.debug = !p.debug
	}
	if p.input.PausePressed() {
		p.togglePause()
	}

	if p.state.Simulating() {
		p.updatePlaying()
	} else if p.state == state.StateGameOver && p.replayer == nil && p.input.GetInput().Restart {
		p.restart()
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) togglePause() {
	switch p.state {
	case state.StatePlaying:
		p.state = state.StatePaused
	case state.StatePaused:
		p.state = state.StatePlaying
	}
}

func (p *Playing) updatePlaying() {
	var in system.InputState
	if p.replayer != nil {
		var ok bool
		if in, ok = p.replayer.Next(); !ok {
			p.state = state.StateReplayFinished
			log.Printf("Replay finished: %d frames, diagnostics %+v", p.replayer.Len(), p.sess.Diagnostics())
			return
		}
	} else {
		in = p.input.GetInput()
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	if err := p.sess.Step(in, system.Frame{DT: p.dt, Debug: p.debug}); err != nil {
		p.faults++
		log.Printf("frame %d: %v", p.sess.Frame(), err)
	}

	if p.sess.GameOver() {
		p.state = state.StateGameOver
		p.saveRecording()
	}
}

func (p *Playing) restart() {
	p.sess.Reset()
	p.state = state.StatePlaying
	if p.opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(p.sess.Seed(), p.opts.StageName, p.dt)
		log.Printf("Recording restarted (seed: %d)", p.sess.Seed())
	}
}

func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.recorder.Stop()

	if err := p.recorder.Save(p.opts.RecordPath); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", p.opts.RecordPath, p.recorder.FrameCount())
	}
}

// camera returns the world position of the screen's top-left corner,
// centered on the player and clamped to the map
func (p *Playing) camera() entity.Vec2 {
	viewW := float64(p.screenW) / p.zoom
	viewH := float64(p.screenH) / p.zoom
	c := p.sess.Player.Center()
	m := p.sess.Map

	return entity.Vec2{
		X: math.Max(0, math.Min(c.X-viewW/2, m.WidthPx()-viewW)),
		Y: math.Max(0, math.Min(c.Y-viewH/2, m.HeightPx()-viewH)),
	}
}

// toScreen converts a world rect into screen coordinates
func (p *Playing) toScreen(r entity.Rect, cam entity.Vec2) (x, y, w, h float64) {
	return (r.X - cam.X) * p.zoom, (r.Y - cam.Y) * p.zoom, r.W * p.zoom, r.H * p.zoom
}

// Draw renders the session
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	cam := p.camera()

	p.drawTiles(screen, cam)
	if p.debug {
		p.drawGrid(screen, cam)
	}
	p.drawItems(screen, cam)
	p.drawEnemies(screen, cam)
	p.drawProjectiles(screen, cam)
	p.drawPlayer(screen, cam)
	p.drawHUD(screen)
	if p.debug {
		p.drawDiagnostics(screen)
	}

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, colorPaused, "PAUSED\n\nPress ESC to resume")
	case state.StateGameOver:
		p.drawOverlay(screen, colorGameOver, fmt.Sprintf("GAME OVER\n\nScore: %d  Level: %d\n\nPress R to restart", p.sess.Player.Score, p.sess.Player.Level))
	case state.StateReplayFinished:
		p.drawOverlay(screen, colorReplayDone, "REPLAY FINISHED")
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam entity.Vec2) {
	m := p.sess.Map
	ts := float64(m.TileSize)
	startX := int(cam.X / ts)
	startY := int(cam.Y / ts)
	endX := int((cam.X+float64(p.screenW)/p.zoom)/ts) + 1
	endY := int((cam.Y+float64(p.screenH)/p.zoom)/ts) + 1

	for ty := startY; ty <= endY && ty < m.Height; ty++ {
		for tx := startX; tx <= endX && tx < m.Width; tx++ {
			tile := m.GetTile(tx, ty)
			var c color.Color
			switch tile.Type {
			case entity.TileWall:
				c = colorWall
			case entity.TileProp:
				c = colorProp
			default:
				continue
			}
			x, y, w, h := p.toScreen(entity.Rect{X: float64(tx) * ts, Y: float64(ty) * ts, W: ts, H: ts}, cam)
			ebitenutil.DrawRect(screen, x, y, w, h, c)
		}
	}
}

func (p *Playing) drawGrid(screen *ebiten.Image, cam entity.Vec2) {
	g := p.sess.Enemies.Grid()
	size := g.CellSize()
	for _, c := range g.Cells() {
		x, y, w, h := p.toScreen(entity.Rect{X: float64(c.X) * size, Y: float64(c.Y) * size, W: size, H: size}, cam)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, colorGrid, false)
	}
}

func (p *Playing) drawItems(screen *ebiten.Image, cam entity.Vec2) {
	for _, it := range p.sess.Enemies.Items() {
		c := colorGem
		if it.Kind == entity.ItemTuna {
			c = colorTuna
		}
		x, y, w, h := p.toScreen(it.Rect(), cam)
		ebitenutil.DrawRect(screen, x, y, w, h, c)
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image, cam entity.Vec2) {
	for _, e := range p.sess.Enemies.Enemies() {
		c := colorSlime
		if e.Behavior == entity.BehaviorRanged {
			c = colorRanged
		}
		x, y, w, h := p.toScreen(e.Hitbox(), cam)
		ebitenutil.DrawRect(screen, x, y, w, h, c)

		if e.Health < e.MaxHealth && e.MaxHealth > 0 {
			ratio := math.Max(0, e.Health/e.MaxHealth)
			ebitenutil.DrawRect(screen, x, y-4, w, 2, colorHealthBG)
			ebitenutil.DrawRect(screen, x, y-4, w*ratio, 2, colorHealthFG)
		}
	}
}

func (p *Playing) drawProjectiles(screen *ebiten.Image, cam entity.Vec2) {
	for _, proj := range p.sess.Enemies.Projectiles() {
		c := colorFireball
		if proj.TargetType == entity.TargetPlayer {
			c = colorEnemyShot
		}
		cx := (proj.Pos.X - cam.X) * p.zoom
		cy := (proj.Pos.Y - cam.Y) * p.zoom
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(proj.Size/4*p.zoom), c, true)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam entity.Vec2) {
	c := colorPlayer
	if p.sess.Player.Invincible {
		c = colorGodMode
	}
	x, y, w, h := p.toScreen(p.sess.Player.Hitbox(), cam)
	ebitenutil.DrawRect(screen, x, y, w, h, c)
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	player := p.sess.Player
	barX := 10.0
	barY := float64(p.screenH - 20)
	barW := 100.0
	barH := 6.0

	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)
	ebitenutil.DrawRect(screen, barX, barY, barW*math.Max(0, player.Health/player.MaxHealth), barH, colorHealthFG)

	ebitenutil.DrawRect(screen, barX, barY+barH+2, barW, 3, colorHealthBG)
	if player.ExpToNext > 0 {
		ebitenutil.DrawRect(screen, barX, barY+barH+2, barW*float64(player.Exp)/float64(player.ExpToNext), 3, colorExpFG)
	}

	p.drawText(screen, fmt.Sprintf("Score %d  Lv %d  %s", player.Score, player.Level, formatClock(p.sess.Enemies.Stats().TimeElapsed)), 10, float64(p.screenH-36))
}

func (p *Playing) drawDiagnostics(screen *ebiten.Image) {
	d := p.sess.Diagnostics()
	st := p.sess.Enemies.Stats()
	lines := fmt.Sprintf(
		"difficulty %.2f  spawn %.2f/s\nhp x%.2f  dmg x%.2f\nenemies %d  items %d  cells %d\nshots %d active / %d idle\n%s  faults %d  fps %.0f",
		d.Difficulty, d.SpawnRate, d.HealthMultiplier, d.DamageMultiplier,
		st.Enemies, st.Items, st.GridCells,
		st.ActiveProjectiles, st.IdleProjectiles,
		p.state, p.faults, ebiten.ActualFPS(),
	)
	p.drawText(screen, lines, 6, 4)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.Color, msg string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), c)
	p.drawText(screen, msg, float64(p.screenW/2-60), float64(p.screenH/2-30))
}

func (p *Playing) drawText(screen *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colorText)
	op.LineSpacing = 14
	text.Draw(screen, s, p.face, op)
}

// formatClock renders seconds as m:ss
func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// State returns the scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Faults returns how many frames reported a simulation fault
func (p *Playing) Faults() int {
	return p.faults
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
