package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem reads the keyboard
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds one frame of player intent. Everything here is recorded
// by replays; pause and overlay toggles are handled by the scene.
type InputState struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	// Debug actions, edge-triggered
	Boost   bool // raise the manual spawn multiplier
	GodMode bool // toggle player invincibility
	Restart bool
}

// Any reports whether any key is held or pressed
func (s InputState) Any() bool {
	return s.Left || s.Right || s.Up || s.Down || s.Boost || s.GodMode || s.Restart
}

// GetInput reads the current input state. Arrow keys mirror WASD.
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:      ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Boost:   inpututil.IsKeyJustPressed(ebiten.KeyF3),
		GodMode: inpututil.IsKeyJustPressed(ebiten.KeyH),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// PausePressed reports the pause toggle (Escape or P)
func (s *InputSystem) PausePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
}

// DebugPressed reports the diagnostics overlay toggle
func (s *InputSystem) DebugPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF1)
}
