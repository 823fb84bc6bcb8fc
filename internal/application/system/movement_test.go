package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/horde/internal/domain/entity"
)

func TestPlayerController_Move(t *testing.T) {
	tests := []struct {
		name  string
		input InputState
		want  entity.Vec2
	}{
		{"idle", InputState{}, entity.Vec2{X: 100, Y: 100}},
		{"right", InputState{Right: true}, entity.Vec2{X: 115, Y: 100}},
		{"up", InputState{Up: true}, entity.Vec2{X: 100, Y: 85}},
		{"opposite keys cancel", InputState{Left: true, Right: true}, entity.Vec2{X: 100, Y: 100}},
		{"diagonal is normalized", InputState{Right: true, Down: true}, entity.Vec2{X: 100 + 15/math.Sqrt2, Y: 100 + 15/math.Sqrt2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPlayerController(openWorld, 1000, 1000)
			player := entity.NewPlayer(100, 100, 16, 16, 150, 100)

			c.Move(player, tt.input, 0.1)

			assert.InDelta(t, tt.want.X, player.Pos.X, 1e-9)
			assert.InDelta(t, tt.want.Y, player.Pos.Y, 1e-9)
		})
	}
}

func TestPlayerController_SlidesAlongWalls(t *testing.T) {
	c := NewPlayerController(createWallMap(10), 320, 320)
	player := entity.NewPlayer(140, 100, 16, 16, 150, 100)

	c.Move(player, InputState{Right: true, Down: true}, 0.1)

	assert.Equal(t, 140.0, player.Pos.X, "blocked by the wall")
	assert.Greater(t, player.Pos.Y, 100.0, "still slides down")
}

func TestPlayerController_ClampsToMap(t *testing.T) {
	c := NewPlayerController(openWorld, 320, 320)
	player := entity.NewPlayer(2, 300, 16, 16, 150, 100)

	c.Move(player, InputState{Left: true, Down: true}, 0.1)

	assert.Equal(t, 0.0, player.Pos.X)
	assert.Equal(t, 304.0, player.Pos.Y)
}
