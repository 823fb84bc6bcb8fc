package replay

import "github.com/younwookim/horde/internal/application/system"

// FormatVersion is written into every recording and required on load
const FormatVersion = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	U  bool `json:"u,omitempty"`  // Up
	D  bool `json:"d,omitempty"`  // Down
	B  bool `json:"b,omitempty"`  // Spawn boost
	G  bool `json:"g,omitempty"`  // God mode toggle
	RS bool `json:"rs,omitempty"` // Restart
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	DT        float64      `json:"dt"` // fixed step every frame was simulated with
	Frames    []FrameInput `json:"frames"`
}

// FromInput converts a simulation input into a recorded frame
func FromInput(frame int, in system.InputState) FrameInput {
	return FrameInput{
		F:  frame,
		L:  in.Left,
		R:  in.Right,
		U:  in.Up,
		D:  in.Down,
		B:  in.Boost,
		G:  in.GodMode,
		RS: in.Restart,
	}
}

// Input converts a recorded frame back into simulation input
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Left:    fi.L,
		Right:   fi.R,
		Up:      fi.U,
		Down:    fi.D,
		Boost:   fi.B,
		GodMode: fi.G,
		Restart: fi.RS,
	}
}
