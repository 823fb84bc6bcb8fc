package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/younwookim/horde/internal/application/system"
)

// ErrCorruptReplay is returned for recordings that cannot reproduce a run
var ErrCorruptReplay = errors.New("corrupt replay")

// Validate checks that d can drive a deterministic replay
func (d ReplayData) Validate() error {
	if d.Version != FormatVersion {
		return fmt.Errorf("%w: version %q, want %q", ErrCorruptReplay, d.Version, FormatVersion)
	}
	if d.DT < 0 || math.IsNaN(d.DT) || math.IsInf(d.DT, 0) {
		return fmt.Errorf("%w: dt %v", ErrCorruptReplay, d.DT)
	}
	for i, f := range d.Frames {
		if f.F != i {
			return fmt.Errorf("%w: frame %d numbered %d", ErrCorruptReplay, i, f.F)
		}
	}
	return nil
}

// ReadReplay decodes and validates a recording from r
func ReadReplay(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// LoadReplay reads a recording written by Recorder.Save
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := ReadReplay(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// Replayer feeds recorded input back one frame at a time
type Replayer struct {
	data ReplayData
	pos  int
}

// NewReplayer creates a replayer positioned at the first frame
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// Next returns the input of the next recorded frame; ok is false once
// every frame has been played
func (r *Replayer) Next() (in system.InputState, ok bool) {
	if r.Done() {
		return system.InputState{}, false
	}
	in = r.data.Frames[r.pos].Input()
	r.pos++
	return in, true
}

// Done reports whether every recorded frame has been played
func (r *Replayer) Done() bool {
	return r.pos >= len(r.data.Frames)
}

// Position returns how many frames have been played
func (r *Replayer) Position() int { return r.pos }

// Len returns the number of recorded frames
func (r *Replayer) Len() int { return len(r.data.Frames) }

// Seed returns the seed the recorded session was created with
func (r *Replayer) Seed() int64 { return r.data.Seed }

// DT returns the fixed step the recording was made with
func (r *Replayer) DT() float64 { return r.data.DT }

// Stage returns the stage the recording was made on
func (r *Replayer) Stage() string { return r.data.Stage }

// Rewind moves back to the first frame
func (r *Replayer) Rewind() {
	r.pos = 0
}

// CreateTestReplayData returns a recording of an idle player
func CreateTestReplayData(frames int, dt float64) ReplayData {
	data := ReplayData{
		Version:   FormatVersion,
		Seed:      12345,
		Stage:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		DT:        dt,
		Frames:    make([]FrameInput, frames),
	}
	for i := range data.Frames {
		data.Frames[i].F = i
	}
	return data
}
