package replay

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/horde/internal/application/system"
)

func TestFrameInput_JSONOmitsIdleKeys(t *testing.T) {
	data, err := json.Marshal(FrameInput{F: 3, L: true})
	require.NoError(t, err)

	assert.JSONEq(t, `{"f":3,"l":true}`, string(data))
}

func TestReplayData_JSONMarshal(t *testing.T) {
	data := ReplayData{
		Version:   FormatVersion,
		Seed:      12345,
		Stage:     "arena",
		StartTime: "2024-01-01T00:00:00Z",
		DT:        1.0 / 60,
		Frames: []FrameInput{
			{F: 0},
			{F: 1, R: true, B: true},
		},
	}

	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	var decoded ReplayData
	err = json.Unmarshal(jsonData, &decoded)
	require.NoError(t, err)

	assert.Equal(t, data, decoded)
}

func TestReplayer_Next(t *testing.T) {
	data := ReplayData{
		Version: FormatVersion,
		Seed:    42,
		Stage:   "test",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, G: true},
			{F: 2},
		},
	}

	replayer := NewReplayer(data)

	input, ok := replayer.Next()
	require.True(t, ok)
	assert.True(t, input.Left)
	assert.False(t, input.Right)

	input, ok = replayer.Next()
	require.True(t, ok)
	assert.False(t, input.Left)
	assert.True(t, input.Right)
	assert.True(t, input.GodMode)

	input, ok = replayer.Next()
	require.True(t, ok)
	assert.False(t, input.Any())
	assert.True(t, replayer.Done())

	_, ok = replayer.Next()
	assert.False(t, ok)
}

func TestReplayer_Position(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(5, 1.0/60))

	assert.Equal(t, 0, replayer.Position())

	replayer.Next()
	assert.Equal(t, 1, replayer.Position())

	replayer.Next()
	replayer.Next()
	assert.Equal(t, 3, replayer.Position())
	assert.Equal(t, 5, replayer.Len())
}

func TestReplayer_Metadata(t *testing.T) {
	replayer := NewReplayer(ReplayData{Seed: 99999, Stage: "arena", DT: 0.02})

	assert.Equal(t, int64(99999), replayer.Seed())
	assert.Equal(t, "arena", replayer.Stage())
	assert.Equal(t, 0.02, replayer.DT())
	assert.True(t, replayer.Done())
}

func TestReplayer_Rewind(t *testing.T) {
	replayer := NewReplayer(ReplayData{Frames: []FrameInput{{F: 0, U: true}, {F: 1}}})

	replayer.Next()
	replayer.Next()
	_, ok := replayer.Next()
	assert.False(t, ok)

	replayer.Rewind()
	assert.Equal(t, 0, replayer.Position())

	input, ok := replayer.Next()
	assert.True(t, ok)
	assert.True(t, input.Up)
}

func TestReplayData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *ReplayData)
		wantErr bool
	}{
		{"valid", func(*ReplayData) {}, false},
		{"no frames", func(d *ReplayData) { d.Frames = nil }, false},
		{"wrong version", func(d *ReplayData) { d.Version = "0.9" }, true},
		{"negative dt", func(d *ReplayData) { d.DT = -1 }, true},
		{"gap in frames", func(d *ReplayData) { d.Frames[2].F = 5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CreateTestReplayData(4, 1.0/60)
			tt.mutate(&d)

			err := d.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCorruptReplay)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadReplay(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		data, err := ReadReplay(strings.NewReader(`{"version":"1.0","seed":3,"dt":0.5,"frames":[{"f":0,"d":true}]}`))
		require.NoError(t, err)
		assert.Equal(t, int64(3), data.Seed)
		assert.True(t, data.Frames[0].D)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ReadReplay(strings.NewReader(`{"version":`))
		assert.Error(t, err)
	})

	t.Run("corrupt", func(t *testing.T) {
		_, err := ReadReplay(strings.NewReader(`{"version":"1.0","frames":[{"f":1}]}`))
		assert.ErrorIs(t, err, ErrCorruptReplay)
	})
}

func TestFrameInput_RoundTripsEveryKey(t *testing.T) {
	in := system.InputState{
		Left: true, Right: true, Up: true, Down: true,
		Boost: true, GodMode: true, Restart: true,
	}

	assert.Equal(t, in, FromInput(0, in).Input())
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(7, "arena", 1.0/60)
	rec.RecordFrame(system.InputState{Left: true})
	rec.RecordFrame(system.InputState{Boost: true})
	rec.Stop()
	rec.RecordFrame(system.InputState{Right: true})

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 2, rec.FrameCount())
	assert.Equal(t, []FrameInput{{F: 0, L: true}, {F: 1, B: true}}, rec.GetData().Frames)

	t.Run("save and load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), GenerateFilename())
		require.NoError(t, rec.Save(path))

		loaded, err := LoadReplay(path)
		require.NoError(t, err)
		assert.Equal(t, int64(7), loaded.Seed)
		assert.Equal(t, "arena", loaded.Stage)
		assert.Equal(t, 1.0/60, loaded.DT)
		assert.Len(t, loaded.Frames, 2)
	})

	t.Run("empty recording is not saved", func(t *testing.T) {
		err := NewRecorder(1, "arena", 0.1).Save(filepath.Join(t.TempDir(), "x.json"))
		assert.ErrorIs(t, err, ErrNoFrames)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})
}
