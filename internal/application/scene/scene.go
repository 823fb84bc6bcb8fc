// Package scene defines the screens game.Game can run.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the program, such as a live session or a replay.
//
// game.Game calls Update once per tick with a fixed step and switches to
// the returned Scene when it is non-nil.
type Scene interface {
	// Update advances the screen by dt seconds. A non-nil next replaces
	// this scene; a non-nil error ends the program.
	Update(dt float64) (next Scene, err error)

	// Draw renders the screen.
	Draw(screen *ebiten.Image)

	// OnEnter runs when the scene becomes current.
	OnEnter()

	// OnExit runs when the scene is replaced or the program closes.
	// Recordings are flushed here.
	OnExit()
}
