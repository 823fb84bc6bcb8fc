package system

import "github.com/younwookim/horde/internal/domain/entity"

// PlayerController moves the player from input against static geometry
type PlayerController struct {
	collider      entity.StaticCollider
	width, height float64
}

// NewPlayerController creates a controller for a world of the given pixel size
func NewPlayerController(collider entity.StaticCollider, width, height float64) *PlayerController {
	return &PlayerController{collider: collider, width: width, height: height}
}

// Move applies one frame of input. Each axis is integrated separately and
// reverted on its own if it would enter a solid tile, so the player slides
// along walls.
func (c *PlayerController) Move(player *entity.Player, input InputState, dt float64) {
	var dir entity.Vec2
	if input.Left {
		dir.X--
	}
	if input.Right {
		dir.X++
	}
	if input.Up {
		dir.Y--
	}
	if input.Down {
		dir.Y++
	}
	player.Vel = dir.Normalize().Scale(player.Speed)

	if player.Vel.X != 0 {
		x := clamp(player.Pos.X+player.Vel.X*dt, 0, c.width-player.Width)
		if !c.collider.Collides(entity.Rect{X: x, Y: player.Pos.Y, W: player.Width, H: player.Height}) {
			player.Pos.X = x
		}
	}
	if player.Vel.Y != 0 {
		y := clamp(player.Pos.Y+player.Vel.Y*dt, 0, c.height-player.Height)
		if !c.collider.Collides(entity.Rect{X: player.Pos.X, Y: y, W: player.Width, H: player.Height}) {
			player.Pos.Y = y
		}
	}
}
