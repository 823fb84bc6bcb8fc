package state

// GameState represents the current state of the playing scene
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
	StateReplayFinished
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateReplayFinished:
		return "ReplayFinished"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the session advances in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying
}
