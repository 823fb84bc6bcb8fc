// Package game runs the active scene inside ebiten's loop.
package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/horde/internal/application/scene"
)

// ErrTooManyDrops stops the loop when a scene panics on every frame
var ErrTooManyDrops = errors.New("too many consecutive dropped frames")

// Config sizes the logical screen and fixes the update step
type Config struct {
	ScreenW int
	ScreenH int
	DT      float64 // seconds passed to Scene.Update; 0 means 1/60
	// MaxConsecutiveDrops ends the loop after this many panicking frames
	// in a row. 0 disables the limit.
	MaxConsecutiveDrops int
}

// Game implements ebiten.Game on top of a current Scene.
//
// A panic escaping the scene is recovered and the frame is dropped; the
// scene keeps running on the next tick.
type Game struct {
	cfg     Config
	current scene.Scene
	logger  *log.Logger
	dropped int
	streak  int
}

// New starts a Game on initial. initial.OnEnter runs immediately.
func New(initial scene.Scene, cfg Config) *Game {
	if cfg.DT <= 0 {
		cfg.DT = 1.0 / 60.0
	}
	g := &Game{
		cfg:     cfg,
		current: initial,
		logger:  log.Default(),
	}
	g.current.OnEnter()
	return g
}

// SetLogger replaces the logger used for dropped frames
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// Update advances the current scene and performs transitions
func (g *Game) Update() error {
	next, dropped, err := g.step()
	if dropped {
		g.dropped++
		g.streak++
		if g.cfg.MaxConsecutiveDrops > 0 && g.streak >= g.cfg.MaxConsecutiveDrops {
			return fmt.Errorf("%w: %d", ErrTooManyDrops, g.streak)
		}
		return nil
	}
	g.streak = 0
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

func (g *Game) step() (next scene.Scene, dropped bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Printf("frame dropped: %v", r)
			next, dropped, err = nil, true, nil
		}
	}()
	next, err = g.current.Update(g.cfg.DT)
	return next, false, err
}

// Draw renders the current scene
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.ScreenW, g.cfg.ScreenH
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// Dropped returns how many frames were dropped to recovered panics
func (g *Game) Dropped() int {
	return g.dropped
}

// Close exits the active scene. Call it once after ebiten.RunGame returns.
func (g *Game) Close() {
	g.current.OnExit()
}
