package entity

// Player represents the player entity the horde converges on
type Player struct {
	Pos    Vec2 // top-left, world pixels
	Vel    Vec2
	Width  float64
	Height float64
	Speed  float64

	Health    float64
	MaxHealth float64

	// Progression
	Score     int
	Level     int
	Exp       int
	ExpToNext int
	ExpGrowth float64

	// God mode (debug)
	Invincible bool
}

// NewPlayer creates a player at pixel position (x, y)
func NewPlayer(x, y, width, height, speed, maxHealth float64) *Player {
	return &Player{
		Pos:       Vec2{X: x, Y: y},
		Width:     width,
		Height:    height,
		Speed:     speed,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Level:     1,
		ExpToNext: 5,
		ExpGrowth: 1.5,
	}
}

// Center returns the player's center point
func (p *Player) Center() Vec2 {
	return Vec2{p.Pos.X + p.Width/2, p.Pos.Y + p.Height/2}
}

// Hitbox returns the player's hitbox in world coordinates
func (p *Player) Hitbox() Rect {
	return Rect{X: p.Pos.X, Y: p.Pos.Y, W: p.Width, H: p.Height}
}

// TakeDamage applies damage unless the player is invincible
func (p *Player) TakeDamage(amount float64) {
	if p.Invincible {
		return
	}
	p.Health -= amount
}

// Heal restores health up to max
func (p *Player) Heal(amount float64) {
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// GainExp adds experience and returns true when a level was gained
func (p *Player) GainExp(amount int) bool {
	p.Exp += amount
	if p.Exp < p.ExpToNext {
		return false
	}
	p.Level++
	p.Exp = 0
	p.ExpToNext = int(float64(p.ExpToNext) * p.ExpGrowth)
	if p.ExpToNext < 1 {
		p.ExpToNext = 1
	}
	return true
}

// IsDead returns true when health is exhausted and god mode is off
func (p *Player) IsDead() bool {
	return p.Health <= 0 && !p.Invincible
}
