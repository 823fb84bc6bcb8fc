package entity

// VariantID names an enemy variant in the variant table ("slime", "ranged", ...)
type VariantID string

// Behavior tags how an enemy variant moves and attacks
type Behavior int

const (
	// BehaviorChase seeks the player while avoiding obstacles
	BehaviorChase Behavior = iota
	// BehaviorRanged keeps its distance and shoots at the player
	BehaviorRanged
)

// String returns the config name of the behavior
func (b Behavior) String() string {
	switch b {
	case BehaviorChase:
		return "chase"
	case BehaviorRanged:
		return "ranged"
	default:
		return "unknown"
	}
}

// ParseBehavior maps a config name to a Behavior
func ParseBehavior(s string) (Behavior, bool) {
	switch s {
	case "chase":
		return BehaviorChase, true
	case "ranged":
		return BehaviorRanged, true
	default:
		return 0, false
	}
}

// Enemy represents a hostile entity of the horde
type Enemy struct {
	ID       EntityID
	Pos      Vec2 // top-left, world pixels
	Width    float64
	Height   float64
	Variant  VariantID
	Behavior Behavior

	// Hitbox relative to Pos
	HitboxOffsetX float64
	HitboxOffsetY float64
	HitboxWidth   float64
	HitboxHeight  float64

	// Stats (already scaled by difficulty at spawn)
	Health          float64
	MaxHealth       float64
	Damage          float64
	Speed           float64
	CollisionRadius float64
	DetectionRadius float64

	// Per-variant tuning
	AttackCooldown  float64
	EscapeRadius    float64
	ProjectileSpeed float64
	StuckProbe      bool

	// State
	AttackTimer float64
}

// Center returns the center of the enemy's sprite rect
func (e *Enemy) Center() Vec2 {
	return Vec2{e.Pos.X + e.Width/2, e.Pos.Y + e.Height/2}
}

// Rect returns the enemy's sprite rect in world coordinates
func (e *Enemy) Rect() Rect {
	return Rect{X: e.Pos.X, Y: e.Pos.Y, W: e.Width, H: e.Height}
}

// Hitbox returns the collision hitbox in world coordinates
func (e *Enemy) Hitbox() Rect {
	if e.HitboxWidth <= 0 || e.HitboxHeight <= 0 {
		return e.Rect()
	}
	return Rect{
		X: e.Pos.X + e.HitboxOffsetX,
		Y: e.Pos.Y + e.HitboxOffsetY,
		W: e.HitboxWidth,
		H: e.HitboxHeight,
	}
}

// HitboxAt returns the hitbox the enemy would have at top-left position p
func (e *Enemy) HitboxAt(p Vec2) Rect {
	return e.Hitbox().Translate(p.Sub(e.Pos))
}

// MoveTo places the enemy's top-left corner at p
func (e *Enemy) MoveTo(p Vec2) {
	e.Pos = p
}

// MoveBy displaces the enemy by d
func (e *Enemy) MoveBy(d Vec2) {
	e.Pos = e.Pos.Add(d)
}

// TakeDamage applies damage and returns true if the enemy is now dead
func (e *Enemy) TakeDamage(amount float64) bool {
	e.Health -= amount
	return e.Health <= 0
}

// IsAlive returns true while health is positive
func (e *Enemy) IsAlive() bool {
	return e.Health > 0
}
